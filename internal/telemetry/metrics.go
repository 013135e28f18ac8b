// internal/telemetry/metrics.go
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the control loop's collectors.
type Metrics struct {
	// Cycles counts completed cycles by result
	// (ok | degraded | failover | error).
	Cycles *prometheus.CounterVec

	// FailoverAttempts counts attempts by outcome.
	FailoverAttempts *prometheus.CounterVec

	// ActiveSignal is the last sampled level of the active network.
	ActiveSignal prometheus.Gauge

	// CycleDuration tracks wall time per cycle.
	CycleDuration prometheus.Histogram

	// PublishErrors counts failed observer deliveries.
	PublishErrors prometheus.Counter
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Cycles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wififailover_cycles_total",
			Help: "Control loop cycles by result",
		}, []string{"result"}),

		FailoverAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wififailover_failover_attempts_total",
			Help: "Failover attempts by outcome",
		}, []string{"outcome"}),

		ActiveSignal: f.NewGauge(prometheus.GaugeOpts{
			Name: "wififailover_active_signal_dbm",
			Help: "Signal level of the active network in dBm",
		}),

		CycleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wififailover_cycle_duration_seconds",
			Help:    "Control loop cycle duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		}),

		PublishErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "wififailover_publish_errors_total",
			Help: "Observer deliveries that failed",
		}),
	}
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
