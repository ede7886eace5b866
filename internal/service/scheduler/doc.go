// Package scheduler implements the concurrent core of the alarm scheduler:
// the request submitter, the dispatcher loop and the per-alarm display
// workers.
//
// One dispatcher goroutine takes the head of the id-ordered registry, waits
// out the alarm's remaining lifetime off-lock and retires it. Each tracked
// alarm gets exactly one display worker that re-renders the alarm message on
// a fixed cadence and reacts to mid-flight edits through a private wake
// channel. The submitter path never blocks on worker state.
//
// Run wires the whole process together: configuration, logging, metrics,
// the duplicate-instance guard, the dispatcher and the interactive prompt.
package scheduler
