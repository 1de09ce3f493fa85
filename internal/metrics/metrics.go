package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters exported by the session subsystem.
// Rejection reasons are recorded here and in logs only; clients never see them.
type Metrics struct {
	GateRejections   *prometheus.CounterVec
	GateAccepted     prometheus.Counter
	Revocations      prometheus.Counter
	SweepEvicted     prometheus.Counter
	SweepFailures    prometheus.Counter
	SweepLastSuccess prometheus.Gauge
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GateRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moodlog",
			Subsystem: "session",
			Name:      "gate_rejections_total",
			Help:      "Authenticated requests rejected by the session gate, by internal reason.",
		}, []string{"reason"}),
		GateAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "moodlog",
			Subsystem: "session",
			Name:      "gate_accepted_total",
			Help:      "Requests accepted by the session gate.",
		}),
		Revocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "moodlog",
			Subsystem: "session",
			Name:      "revocations_total",
			Help:      "Tokens revoked through logout.",
		}),
		SweepEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "moodlog",
			Subsystem: "revocation_sweeper",
			Name:      "evicted_total",
			Help:      "Revocation records removed by the sweeper.",
		}),
		SweepFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "moodlog",
			Subsystem: "revocation_sweeper",
			Name:      "failures_total",
			Help:      "Sweeps that returned an error.",
		}),
		SweepLastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "moodlog",
			Subsystem: "revocation_sweeper",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful sweep.",
		}),
	}

	reg.MustRegister(
		m.GateRejections,
		m.GateAccepted,
		m.Revocations,
		m.SweepEvicted,
		m.SweepFailures,
		m.SweepLastSuccess,
	)
	return m
}
