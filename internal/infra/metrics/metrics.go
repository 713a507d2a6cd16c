// Package metrics exposes Prometheus instrumentation for the dispatch pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricPrefix = "nydra_"

// Dispatch failure reasons used as label values.
const (
	FailureReasonUnreachable = "unreachable"
	FailureReasonEnqueue     = "enqueue"
	FailureReasonTimeout     = "timeout"
	FailureReasonRejected    = "rejected"
)

// DispatchMetrics aggregates the collectors for the command dispatch pipeline.
// The registry is injected so tests can use an isolated one.
type DispatchMetrics struct {
	queueDepth        prometheus.Gauge
	commandsEnqueued  prometheus.Counter
	commandsDelivered prometheus.Counter
	commandsDeferred  prometheus.Counter
	commandsFailed    *prometheus.CounterVec
	dispatchLatency   prometheus.Histogram

	wsConnections prometheus.Gauge
}

// NewDispatchMetrics creates and registers the dispatch collectors.
func NewDispatchMetrics(registry *prometheus.Registry) *DispatchMetrics {
	m := &DispatchMetrics{
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "dispatch_queue_depth",
			Help: "Number of commands currently waiting in the dispatch queue",
		}),
		commandsEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "commands_enqueued_total",
			Help: "Total commands accepted into the dispatch queue",
		}),
		commandsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "commands_delivered_total",
			Help: "Total commands pushed to a live target connection",
		}),
		commandsDeferred: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "commands_deferred_total",
			Help: "Total dispatch attempts deferred because the target was offline",
		}),
		commandsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "commands_failed_total",
			Help: "Total commands that reached the failed status, by reason",
		}, []string{"reason"}),
		dispatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "dispatch_latency_seconds",
			Help:    "Time from enqueue to delivery on a live connection",
			Buckets: prometheus.DefBuckets,
		}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "websocket_connections",
			Help: "Number of live device websocket connections",
		}),
	}

	registry.MustRegister(
		m.queueDepth,
		m.commandsEnqueued,
		m.commandsDelivered,
		m.commandsDeferred,
		m.commandsFailed,
		m.dispatchLatency,
		m.wsConnections,
	)

	return m
}

// NewRegistry creates the process-wide Prometheus registry with the standard
// Go runtime and process collectors attached.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// SetQueueDepth records the current number of queued commands.
func (m *DispatchMetrics) SetQueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}

// IncEnqueued increments the accepted command counter.
func (m *DispatchMetrics) IncEnqueued() {
	m.commandsEnqueued.Inc()
}

// ObserveDelivered records a successful delivery and its queue latency.
func (m *DispatchMetrics) ObserveDelivered(queuedFor time.Duration) {
	m.commandsDelivered.Inc()
	if queuedFor < 0 {
		queuedFor = 0
	}
	m.dispatchLatency.Observe(queuedFor.Seconds())
}

// IncDeferred increments the offline-target deferral counter.
func (m *DispatchMetrics) IncDeferred() {
	m.commandsDeferred.Inc()
}

// IncFailed increments the failure counter for a reason.
func (m *DispatchMetrics) IncFailed(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.commandsFailed.WithLabelValues(reason).Inc()
}

// ConnectionOpened increments the live websocket connection gauge.
func (m *DispatchMetrics) ConnectionOpened() {
	m.wsConnections.Inc()
}

// ConnectionClosed decrements the live websocket connection gauge.
func (m *DispatchMetrics) ConnectionClosed() {
	m.wsConnections.Dec()
}
