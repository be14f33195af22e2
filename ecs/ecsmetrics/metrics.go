// Package ecsmetrics exposes Prometheus instrumentation for an App's tick
// loop: how long each tick takes, how many entities are live, and how many
// events pass through the scheduler. Grounded on the teacher's
// engine/clock_scheduler.go, whose statTicks/statEntityCount/statQueueLen
// atomic counters play the same role via a hand-rolled status registry;
// here they are real prometheus.Collector instances instead, since this
// module's domain stack wires in github.com/prometheus/client_golang
// directly.
package ecsmetrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the collectors one App registers once at construction.
type Metrics struct {
	TickDuration prometheus.Histogram
	TickCount    prometheus.Counter
	EntityCount  prometheus.Gauge
	EventsSent   prometheus.Counter
}

// New builds an unregistered Metrics bundle. Namespace/subsystem prefix
// every metric name so multiple Apps in one process don't collide.
func New(namespace, subsystem string) *Metrics {
	return &Metrics{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock duration of one schedule.Run call.",
			Buckets:   prometheus.DefBuckets,
		}),
		TickCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ticks_total",
			Help:      "Number of completed ticks.",
		}),
		EntityCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "entities",
			Help:      "Number of currently live entities.",
		}),
		EventsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "events_sent_total",
			Help:      "Number of events sent through any Events[T] queue instrumented by the app.",
		}),
	}
}

// MustRegister registers every collector against reg, panicking on a
// duplicate registration (mirrors prometheus.MustRegister's own contract).
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.TickDuration, m.TickCount, m.EntityCount, m.EventsSent)
}
