package scheduler

import (
	"context"
	"runtime"
	"time"

	"github.com/oshokin/alarm-scheduler/internal/domain/alarm"
	"github.com/oshokin/alarm-scheduler/internal/events"
	"github.com/oshokin/alarm-scheduler/internal/logger"
	"github.com/oshokin/alarm-scheduler/internal/metrics"
)

// Run executes the dispatcher loop until the context is canceled, then
// terminates every display worker and waits for them to exit.
//
// Each iteration takes the registry head, spawns its display worker, sleeps
// out the record's remaining lifetime, and retires the record. An empty
// registry earns a short nap so the submitter always gets a turn. An
// already-due record yields the processor once instead of sleeping.
//
// Dispatch order is registry order (ascending id), not nearest-deadline
// order: a long-lived low id is waited out even while a higher id is
// already due.
func (s *Scheduler) Run(ctx context.Context) {
	ctx = logger.WithName(ctx, "dispatcher")
	logger.Debug(ctx, "Dispatcher started")

	for ctx.Err() == nil {
		record, ok := s.registry.TakeHead()
		if !ok {
			if !sleepContext(ctx, s.dispatcherNap) {
				break
			}

			continue
		}

		metrics.SetRegistryDepth(s.registry.Len())
		s.spawnWorker(ctx, record)

		// The expiry must be read under the registry lock: a change request
		// rewrites it concurrently once the record is dispatcher-held.
		if remaining := s.registry.Remaining(record, time.Now()); remaining > 0 {
			logger.DebugKV(ctx, "Waiting out alarm",
				"id", record.ID, "remaining", remaining.String())

			if !sleepContext(ctx, remaining) {
				break
			}
		} else {
			// Already due: give other runnable work a turn without
			// introducing artificial delay.
			runtime.Gosched()
		}

		s.expire(ctx, record)
	}

	s.shutdown()
	logger.Debug(ctx, "Dispatcher stopped")
}

// spawnWorker starts the display worker for the record and registers it
// under the record's id. The dispatcher handles one record at a time and
// expire deregisters the worker before the next head is taken, so no worker
// can exist for the id here, even when ids repeat.
func (s *Scheduler) spawnWorker(ctx context.Context, record *alarm.Alarm) {
	s.mu.Lock()

	worker := newDisplayWorker(record)
	s.workers[record.ID] = worker
	s.wg.Add(1)
	s.mu.Unlock()

	metrics.WorkerStarted()

	s.sink.Emit(ctx, events.Event{
		Type: events.TypeWorkerCreated,
		ID:   record.ID,
		At:   time.Now(),
	})

	go s.runWorker(ctx, worker)

	// First wake moves the worker out of its waiting state.
	worker.notify()
}

// expire retires a due record: it is removed from the registry, the
// expiration is reported, and the owning display worker is told to
// terminate and deregistered. At most one expiration is reported per record.
func (s *Scheduler) expire(ctx context.Context, record *alarm.Alarm) {
	s.registry.Retire(record)
	metrics.ObserveExpiration()

	s.sink.Emit(ctx, events.Event{
		Type:    events.TypeAlarmExpired,
		ID:      record.ID,
		Seconds: record.Seconds,
		Message: record.Message,
		At:      time.Now(),
	})

	s.mu.Lock()
	worker := s.workers[record.ID]
	delete(s.workers, record.ID)
	s.mu.Unlock()

	if worker != nil {
		worker.terminate()
	}
}

// shutdown terminates every registered worker and waits for all of them.
func (s *Scheduler) shutdown() {
	s.mu.Lock()

	workers := make([]*displayWorker, 0, len(s.workers))
	for _, worker := range s.workers {
		workers = append(workers, worker)
	}

	s.workers = make(map[int]*displayWorker)
	s.mu.Unlock()

	for _, worker := range workers {
		worker.terminate()
	}

	s.wg.Wait()
}

// sleepContext pauses for the given duration and reports false when the
// context was canceled before the duration elapsed.
func sleepContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
