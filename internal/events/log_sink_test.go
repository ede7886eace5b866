package events

import (
	"context"
	"testing"
	"time"
)

// TestLogSinkHandlesAllTypes ensures every event type (and an unknown one)
// is routed without panicking.
func TestLogSinkHandlesAllTypes(t *testing.T) {
	t.Parallel()

	sink := NewLogSink()
	ctx := context.Background()
	now := time.Now()

	types := []Type{
		TypeAlarmInserted,
		TypeAlarmChanged,
		TypeChangeRejected,
		TypeWorkerCreated,
		TypeRendered,
		TypeMessageUpdated,
		TypeAlarmExpired,
		TypeWorkerTerminated,
		Type("made_up"),
	}

	for _, eventType := range types {
		sink.Emit(ctx, Event{
			Type:    eventType,
			ID:      1,
			Seconds: 5,
			Message: "hello",
			At:      now,
		})
	}
}
