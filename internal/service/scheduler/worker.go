package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/alarm-scheduler/internal/domain/alarm"
	"github.com/oshokin/alarm-scheduler/internal/events"
	"github.com/oshokin/alarm-scheduler/internal/logger"
	"github.com/oshokin/alarm-scheduler/internal/metrics"
)

// displayWorker renders one alarm's message on a fixed cadence until the
// alarm expires. Its wake channel is private: the dispatcher signals it at
// creation, the submitter signals it on change, and nothing else touches it.
type displayWorker struct {
	// id is the alarm id this worker renders.
	id int

	// wake receives change notifications. Buffered so senders never block;
	// consecutive wakes coalesce.
	wake chan struct{}
	// stop is closed exactly once when the owned alarm expires.
	stop chan struct{}
	// stopOnce guards the close of stop.
	stopOnce sync.Once

	// record is the alarm this worker owns for its whole lifetime. When the
	// same id re-enters tracking a fresh worker is spawned for it.
	record *alarm.Alarm
}

// newDisplayWorker builds a worker bound to the record's id.
func newDisplayWorker(record *alarm.Alarm) *displayWorker {
	return &displayWorker{
		id:     record.ID,
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		record: record,
	}
}

// notify delivers a non-blocking wake signal.
func (w *displayWorker) notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// terminate tells the worker to exit. Safe to call more than once.
func (w *displayWorker) terminate() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
}

// runWorker is the display worker's loop. It blocks until the first wake,
// then renders on the configured cadence, re-reading the owned record under
// the registry lock each cycle so mid-flight edits are picked up. A retired
// record or a termination signal ends the loop; the worker reports its own
// termination exactly once on the way out.
func (s *Scheduler) runWorker(ctx context.Context, w *displayWorker) {
	ctx = logger.WithKV(logger.WithName(ctx, "display-worker"), "id", w.id)

	defer func() {
		metrics.WorkerStopped()

		s.sink.Emit(ctx, events.Event{
			Type: events.TypeWorkerTerminated,
			ID:   w.id,
			At:   time.Now(),
		})

		s.wg.Done()
	}()

	logger.Debug(ctx, "Display worker waiting for work")

	// Block until the dispatcher hands over the first record.
	select {
	case <-ctx.Done():
		return
	case <-w.stop:
		return
	case <-w.wake:
	}

	for {
		// Snapshot the owned record under the registry lock, then render
		// off-lock. A gone record is a normal termination, not an error.
		view, ok := s.registry.Observe(w.record)
		if !ok {
			return
		}

		if view.Changed {
			metrics.ObserveRender(metrics.RenderUpdated)

			s.sink.Emit(ctx, events.Event{
				Type:    events.TypeMessageUpdated,
				ID:      w.id,
				Message: view.Message,
				At:      time.Now(),
			})
		} else {
			metrics.ObserveRender(metrics.RenderInitial)

			s.sink.Emit(ctx, events.Event{
				Type:    events.TypeRendered,
				ID:      w.id,
				Message: view.Message,
				At:      time.Now(),
			})
		}

		// Sleep out the render interval. A change wake cuts the sleep
		// short so an edited message shows without waiting a full cycle.
		timer := time.NewTimer(s.renderInterval)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-w.stop:
			timer.Stop()
			return
		case <-w.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}
