package events

import (
	"context"

	"github.com/oshokin/alarm-scheduler/internal/logger"
)

// LogSink writes events through the shared structured logger.
type LogSink struct{}

// NewLogSink returns a sink backed by the logger package.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Emit logs the event with a per-type message and key-value context.
func (s *LogSink) Emit(ctx context.Context, event Event) {
	switch event.Type {
	case TypeAlarmInserted:
		logger.InfoKV(ctx, "Alarm inserted into alarm list",
			"id", event.ID, "seconds", event.Seconds, "message", event.Message, "at", event.At)
	case TypeAlarmChanged:
		logger.InfoKV(ctx, "Alarm changed",
			"id", event.ID, "seconds", event.Seconds, "message", event.Message, "at", event.At)
	case TypeChangeRejected:
		logger.WarnKV(ctx, "Alarm id not found, change rejected",
			"id", event.ID, "at", event.At)
	case TypeWorkerCreated:
		logger.InfoKV(ctx, "New display worker created",
			"id", event.ID, "at", event.At)
	case TypeRendered:
		logger.InfoKV(ctx, "Alarm message",
			"id", event.ID, "message", event.Message, "at", event.At)
	case TypeMessageUpdated:
		logger.InfoKV(ctx, "Display worker started to print changed message",
			"id", event.ID, "message", event.Message, "at", event.At)
	case TypeAlarmExpired:
		logger.InfoKV(ctx, "Alarm expired, removed from alarm list",
			"id", event.ID, "seconds", event.Seconds, "message", event.Message, "at", event.At)
	case TypeWorkerTerminated:
		logger.InfoKV(ctx, "Display worker terminated",
			"id", event.ID, "at", event.At)
	default:
		logger.WarnKV(ctx, "Unknown scheduler event",
			"type", string(event.Type), "id", event.ID, "at", event.At)
	}
}
