package events

import (
	"context"
	"time"
)

// Type identifies the kind of a scheduler event.
type Type string

const (
	// TypeAlarmInserted is emitted when a start request adds an alarm.
	TypeAlarmInserted Type = "alarm_inserted"
	// TypeAlarmChanged is emitted when a change request rewrites an alarm.
	TypeAlarmChanged Type = "alarm_changed"
	// TypeChangeRejected is emitted when a change request names an unknown id.
	TypeChangeRejected Type = "change_rejected"
	// TypeWorkerCreated is emitted when the dispatcher spawns a display worker.
	TypeWorkerCreated Type = "display_worker_created"
	// TypeRendered is emitted each time a display worker renders its message.
	TypeRendered Type = "display_rendered"
	// TypeMessageUpdated is emitted when a display worker renders a message
	// that changed since its last render.
	TypeMessageUpdated Type = "display_message_updated"
	// TypeAlarmExpired is emitted when the dispatcher retires a due alarm.
	TypeAlarmExpired Type = "alarm_expired"
	// TypeWorkerTerminated is emitted when a display worker exits.
	TypeWorkerTerminated Type = "display_worker_terminated"
)

// Event is a single scheduler occurrence handed to the sink. Formatting and
// display are the sink's concern; the core only reports what happened.
type Event struct {
	// Type is the event kind.
	Type Type
	// ID is the alarm id the event refers to.
	ID int
	// Seconds is the alarm duration where relevant (insert/change/expire).
	Seconds int
	// Message is the alarm text where relevant.
	Message string
	// At is when the event occurred.
	At time.Time
}

// Sink consumes scheduler events. Implementations must be safe for
// concurrent use and must not block; the dispatcher and display workers emit
// from their hot paths.
type Sink interface {
	Emit(ctx context.Context, event Event)
}
