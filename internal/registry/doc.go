// Package registry implements the shared ordered collection of active
// alarms.
//
// All access is linearized by a single exclusive lock. Pending alarms are
// kept sorted ascending by id, which is also the dispatch order. Records
// taken by the dispatcher remain reachable for change requests until they
// are retired, so mid-flight edits reach the display worker.
package registry
