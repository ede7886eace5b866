// Package metrics exposes Prometheus instrumentation for the scheduler:
// request counters by kind and result, expiration and render counters, and
// gauges for registry depth and live display workers.
//
// Init must be called once before any observation; the observation helpers
// are no-ops until then so tests can run without a registry.
package metrics
