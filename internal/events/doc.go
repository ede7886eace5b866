// Package events defines the typed records the scheduler core emits and the
// Sink interface that consumes them.
//
// The core never formats output itself; sinks decide how an event is
// displayed. LogSink routes events through the shared structured logger.
package events
