package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "alarm_scheduler_"

	// ResultCreated labels an accepted start request.
	ResultCreated = "created"
	// ResultUpdated labels an accepted change request.
	ResultUpdated = "updated"
	// ResultRejected labels a change request for an unknown id.
	ResultRejected = "rejected"

	// RenderInitial labels a render of an unchanged message.
	RenderInitial = "message"
	// RenderUpdated labels a render of a freshly changed message.
	RenderUpdated = "changed_message"
)

var (
	registerOnce sync.Once

	requestsTotal *prometheus.CounterVec
	expiredTotal  prometheus.Counter
	rendersTotal  *prometheus.CounterVec

	registryDepth  prometheus.Gauge
	displayWorkers prometheus.Gauge
)

// Init registers the scheduler metrics with the default registry.
// It is safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "requests_total",
				Help: "Total alarm requests by kind and result",
			},
			[]string{"kind", "result"},
		)
		expiredTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "alarms_expired_total",
				Help: "Total alarms retired by the dispatcher",
			},
		)
		rendersTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "renders_total",
				Help: "Total display worker renders by kind",
			},
			[]string{"kind"},
		)

		registryDepth = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "registry_depth",
				Help: "Number of alarms currently pending in the registry",
			},
		)
		displayWorkers = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "display_workers",
				Help: "Number of live display workers",
			},
		)

		prometheus.MustRegister(
			requestsTotal,
			expiredTotal,
			rendersTotal,
			registryDepth,
			displayWorkers,
		)
	})
}

// ObserveRequest counts a submitted request by kind and result.
func ObserveRequest(kind, result string) {
	if requestsTotal == nil {
		return
	}

	requestsTotal.WithLabelValues(kind, result).Inc()
}

// ObserveExpiration counts a retired alarm.
func ObserveExpiration() {
	if expiredTotal == nil {
		return
	}

	expiredTotal.Inc()
}

// ObserveRender counts a display worker render.
func ObserveRender(kind string) {
	if rendersTotal == nil {
		return
	}

	rendersTotal.WithLabelValues(kind).Inc()
}

// SetRegistryDepth records the current pending alarm count.
func SetRegistryDepth(depth int) {
	if registryDepth == nil {
		return
	}

	registryDepth.Set(float64(depth))
}

// WorkerStarted increments the live display worker gauge.
func WorkerStarted() {
	if displayWorkers == nil {
		return
	}

	displayWorkers.Inc()
}

// WorkerStopped decrements the live display worker gauge.
func WorkerStopped() {
	if displayWorkers == nil {
		return
	}

	displayWorkers.Dec()
}
