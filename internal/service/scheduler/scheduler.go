package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/alarm-scheduler/internal/config"
	"github.com/oshokin/alarm-scheduler/internal/domain/alarm"
	"github.com/oshokin/alarm-scheduler/internal/events"
	"github.com/oshokin/alarm-scheduler/internal/metrics"
	"github.com/oshokin/alarm-scheduler/internal/registry"
)

// Scheduler owns the alarm registry, the dispatcher loop and the display
// worker pool. Requests enter through Submit; everything downstream is
// asynchronous and the submitter never blocks on worker state.
type Scheduler struct {
	// registry is the shared ordered collection of active alarms.
	registry *registry.Registry
	// sink consumes every event the core emits.
	sink events.Sink

	// renderInterval is the display worker re-render cadence.
	renderInterval time.Duration
	// dispatcherNap is the off-lock pause when the registry is empty.
	dispatcherNap time.Duration

	// mu guards workers.
	mu sync.Mutex
	// workers maps an alarm id to its single display worker.
	workers map[int]*displayWorker
	// wg tracks live display workers for shutdown.
	wg sync.WaitGroup
}

// Option configures scheduler behaviour.
type Option func(*Scheduler)

// WithRenderInterval overrides the display worker render cadence.
func WithRenderInterval(interval time.Duration) Option {
	return func(s *Scheduler) {
		if interval > 0 {
			s.renderInterval = interval
		}
	}
}

// WithDispatcherNap overrides the dispatcher's empty-registry nap.
func WithDispatcherNap(nap time.Duration) Option {
	return func(s *Scheduler) {
		if nap > 0 {
			s.dispatcherNap = nap
		}
	}
}

// New wires a scheduler around the provided registry and event sink.
func New(reg *registry.Registry, sink events.Sink, opts ...Option) *Scheduler {
	s := &Scheduler{
		registry:       reg,
		sink:           sink,
		renderInterval: config.DefaultRenderInterval,
		dispatcherNap:  config.DefaultDispatcherNap,
		workers:        make(map[int]*displayWorker),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Submit applies a validated request to the registry and reports the outcome
// through the event sink. It runs on the caller's goroutine, never spawns
// workers and never holds the registry lock across I/O.
//
// A change request for an unknown id returns an error wrapping
// registry.ErrNotFound and leaves the registry untouched.
func (s *Scheduler) Submit(ctx context.Context, req *alarm.Request) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	now := time.Now()

	record, outcome := s.registry.Apply(req, now)

	switch outcome {
	case registry.OutcomeCreated:
		metrics.ObserveRequest(string(req.Kind), metrics.ResultCreated)
		metrics.SetRegistryDepth(s.registry.Len())

		s.sink.Emit(ctx, events.Event{
			Type:    events.TypeAlarmInserted,
			ID:      record.ID,
			Seconds: record.Seconds,
			Message: record.Message,
			At:      now,
		})

		return nil
	case registry.OutcomeUpdated:
		metrics.ObserveRequest(string(req.Kind), metrics.ResultUpdated)

		s.sink.Emit(ctx, events.Event{
			Type:    events.TypeAlarmChanged,
			ID:      record.ID,
			Seconds: record.Seconds,
			Message: record.Message,
			At:      now,
		})

		// Wake the owning display worker so the edit renders promptly.
		s.wakeWorker(req.ID)

		return nil
	default:
		metrics.ObserveRequest(string(req.Kind), metrics.ResultRejected)

		s.sink.Emit(ctx, events.Event{
			Type: events.TypeChangeRejected,
			ID:   req.ID,
			At:   now,
		})

		return fmt.Errorf("alarm %d: %w", req.ID, registry.ErrNotFound)
	}
}

// wakeWorker nudges the display worker registered for the id, if any.
// The send never blocks; a worker that is already awake coalesces wakes.
func (s *Scheduler) wakeWorker(id int) {
	s.mu.Lock()
	worker := s.workers[id]
	s.mu.Unlock()

	if worker != nil {
		worker.notify()
	}
}

// workerCount returns the number of registered display workers.
func (s *Scheduler) workerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.workers)
}
