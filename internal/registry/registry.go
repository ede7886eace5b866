package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/oshokin/alarm-scheduler/internal/domain/alarm"
)

// ErrNotFound is returned when a change request names an id that is neither
// pending nor currently held by the dispatcher.
var ErrNotFound = errors.New("alarm not found")

// Outcome describes the result of applying a request to the registry.
type Outcome int

const (
	// OutcomeCreated means a new alarm was inserted.
	OutcomeCreated Outcome = iota
	// OutcomeUpdated means an existing alarm was rewritten in place.
	OutcomeUpdated
	// OutcomeRejected means a change request named an unknown id.
	OutcomeRejected
)

// View is a consistent snapshot of a single alarm taken under the lock,
// handed to display workers so they never render from a record they do not
// hold the lock for.
type View struct {
	// Message is the current alarm text.
	Message string
	// Changed reports whether a change was applied since the last
	// observation. Observing a record clears the flag.
	Changed bool
}

// Registry is the shared ordered collection of active alarms.
//
// Pending alarms are kept sorted ascending by id; the dispatcher always takes
// the head, so dispatch order is id order, not nearest-deadline order. A
// record taken by the dispatcher leaves the pending list but stays reachable
// for change requests until it is retired, which is what makes mid-flight
// message edits visible to the display worker.
//
// Every operation runs under one exclusive lock and none of them blocks
// while holding it.
type Registry struct {
	// mu guards pending and held.
	mu sync.Mutex
	// pending holds queued alarms sorted ascending by id. Among equal ids
	// the newest insertion sits first.
	pending []*alarm.Alarm
	// held holds alarms removed by the dispatcher but not yet retired,
	// in dispatch order. Change requests search it before pending.
	held []*alarm.Alarm
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Apply executes a validated request against the registry, anchoring any
// expiry computation at now. It returns a clone of the affected record for
// event reporting and the outcome of the operation.
//
// A start request always inserts a new record, placed before the first
// pending record with id >= the new id (duplicates allowed). A change
// request rewrites the first record with a matching id, searching the
// dispatcher-held records first and the pending list second; it never
// creates a record.
func (r *Registry) Apply(req *alarm.Request, now time.Time) (*alarm.Alarm, Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.Kind == alarm.KindStart {
		record := alarm.New(req, now)
		r.insertLocked(record)

		return record.Clone(), OutcomeCreated
	}

	record := r.findLocked(req.ID)
	if record == nil {
		return nil, OutcomeRejected
	}

	record.Seconds = req.Seconds
	record.ExpiresAt = now.Add(time.Duration(req.Seconds) * time.Second)
	record.Message = req.Message
	record.Changed = true
	record.Kind = req.Kind

	return record.Clone(), OutcomeUpdated
}

// TakeHead removes and returns the head of the pending list, or reports that
// the list is empty. The caller (the dispatcher) becomes the record's owner;
// the registry keeps the record reachable for change requests until Retire
// is called for it.
func (r *Registry) TakeHead() (*alarm.Alarm, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) == 0 {
		return nil, false
	}

	record := r.pending[0]
	r.pending = r.pending[1:]
	r.held = append(r.held, record)

	return record, true
}

// Retire removes an expired record from the held set. After Retire the
// record is unreachable: change requests for its id report NotFound and
// Observe reports the record gone.
func (r *Registry) Retire(record *alarm.Alarm) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, held := range r.held {
		if held == record {
			r.held = append(r.held[:i], r.held[i+1:]...)
			return
		}
	}
}

// Observe snapshots the render state of a dispatcher-held record and clears
// its changed flag. It reports false once the record has been retired, which
// the display worker treats as a normal termination signal.
func (r *Registry) Observe(record *alarm.Alarm) (View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.heldLocked(record) {
		return View{}, false
	}

	view := View{
		Message: record.Message,
		Changed: record.Changed,
	}
	record.Changed = false

	return view, true
}

// Remaining returns the time left until the record expires, read under the
// lock so that a concurrent change rewriting the expiry is observed safely.
func (r *Registry) Remaining(record *alarm.Alarm, now time.Time) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	return record.Remaining(now)
}

// Len returns the number of pending alarms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pending)
}

// PendingIDs returns the ids of the pending alarms in queue order.
func (r *Registry) PendingIDs() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int, len(r.pending))
	for i, record := range r.pending {
		ids[i] = record.ID
	}

	return ids
}

// insertLocked places the record before the first pending record whose id is
// greater than or equal to the new id, or at the tail.
func (r *Registry) insertLocked(record *alarm.Alarm) {
	position := len(r.pending)

	for i, pending := range r.pending {
		if pending.ID >= record.ID {
			position = i
			break
		}
	}

	r.pending = append(r.pending, nil)
	copy(r.pending[position+1:], r.pending[position:])
	r.pending[position] = record
}

// findLocked returns the first record with a matching id, searching the
// dispatcher-held records before the pending list, or nil.
func (r *Registry) findLocked(id int) *alarm.Alarm {
	for _, held := range r.held {
		if held.ID == id {
			return held
		}
	}

	for _, pending := range r.pending {
		if pending.ID == id {
			return pending
		}
	}

	return nil
}

// heldLocked reports whether the record is currently in the held set.
func (r *Registry) heldLocked(record *alarm.Alarm) bool {
	for _, held := range r.held {
		if held == record {
			return true
		}
	}

	return false
}
