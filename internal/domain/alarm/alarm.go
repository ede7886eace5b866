package alarm

import (
	"errors"
	"fmt"
	"time"
)

// RequestKind identifies the type of a user request.
type RequestKind string

const (
	// KindStart creates a new alarm.
	KindStart RequestKind = "Start_Alarm"
	// KindChange modifies an existing alarm in place.
	KindChange RequestKind = "Change_Alarm"
)

// MaxMessageLength is the maximum number of bytes allowed in an alarm message.
const MaxMessageLength = 127

var (
	// ErrUnknownKind is returned when a request carries an unrecognized kind.
	ErrUnknownKind = errors.New("unknown request kind")
	// ErrNegativeID is returned when an alarm id is negative.
	ErrNegativeID = errors.New("alarm id must not be negative")
	// ErrNegativeSeconds is returned when an alarm duration is negative.
	ErrNegativeSeconds = errors.New("alarm duration must not be negative")
	// ErrEmptyMessage is returned when an alarm message is empty.
	ErrEmptyMessage = errors.New("alarm message must not be empty")
	// ErrMessageTooLong is returned when an alarm message exceeds MaxMessageLength bytes.
	ErrMessageTooLong = errors.New("alarm message is too long")
)

// Request is a validated user request as produced by the command parser.
// It carries no scheduling state; an Alarm is only allocated once the
// request is known to be valid and accepted.
type Request struct {
	// Kind is the request type (start or change).
	Kind RequestKind
	// ID is the caller-supplied alarm id used for ordering and lookup.
	ID int
	// Seconds is the requested time to live in whole seconds.
	Seconds int
	// Message is the text rendered while the alarm is active.
	Message string
}

// Validate checks the request fields against the domain constraints.
func (r *Request) Validate() error {
	if r.Kind != KindStart && r.Kind != KindChange {
		return fmt.Errorf("%q: %w", r.Kind, ErrUnknownKind)
	}

	if r.ID < 0 {
		return ErrNegativeID
	}

	if r.Seconds < 0 {
		return ErrNegativeSeconds
	}

	if r.Message == "" {
		return ErrEmptyMessage
	}

	if len(r.Message) > MaxMessageLength {
		return fmt.Errorf("%d bytes (limit %d): %w", len(r.Message), MaxMessageLength, ErrMessageTooLong)
	}

	return nil
}

// Alarm is a single timed alarm tracked by the registry.
// All fields except ID and Kind may be rewritten by a change request;
// mutation happens only under the registry lock.
type Alarm struct {
	// ID is the caller-supplied id; the registry orders records by it.
	// Uniqueness is not enforced.
	ID int
	// Seconds is the time to live supplied by the most recent request.
	Seconds int
	// ExpiresAt is the absolute expiry instant, recomputed on every change.
	ExpiresAt time.Time
	// Message is the text rendered by the display worker.
	Message string
	// Changed marks an applied change that the display worker has not
	// rendered yet. The worker clears it after rendering.
	Changed bool
	// Kind records the request type that last touched the alarm.
	// It is carried for logging only and does not affect scheduling.
	Kind RequestKind
}

// New builds an alarm from a validated start request.
// The expiry is anchored at the provided instant.
func New(req *Request, now time.Time) *Alarm {
	return &Alarm{
		ID:        req.ID,
		Seconds:   req.Seconds,
		ExpiresAt: now.Add(time.Duration(req.Seconds) * time.Second),
		Message:   req.Message,
		Kind:      req.Kind,
	}
}

// Remaining returns the time left until expiry relative to now.
// The result is negative once the alarm is overdue.
func (a *Alarm) Remaining(now time.Time) time.Duration {
	return a.ExpiresAt.Sub(now)
}

// Expired reports whether the alarm is due at the provided instant.
func (a *Alarm) Expired(now time.Time) bool {
	return !a.ExpiresAt.After(now)
}

// Clone returns a copy of the alarm to avoid leaking internal references.
func (a *Alarm) Clone() *Alarm {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}
