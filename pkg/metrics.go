package pkg

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records fetch outcomes. A nil *Metrics records nothing.
type Metrics struct {
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "covid_overview",
			Name:      "fetches_total",
			Help:      "Overview fetches by result (ok, transport, decode, internal).",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "covid_overview",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching and decoding the overview.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.fetches, m.duration)
	return m
}

func (m *Metrics) observe(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := ErrorKind(err)
	if result == "" {
		result = "ok"
	}
	m.fetches.WithLabelValues(result).Inc()
	m.duration.Observe(elapsed.Seconds())
}
