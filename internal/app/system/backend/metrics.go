// internal/app/system/backend/metrics.go
package backend

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records backend call latency and failures.
type Metrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eventdash",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Latency of backend API calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "method", "code"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventdash",
			Subsystem: "backend",
			Name:      "request_failures_total",
			Help:      "Backend API calls that failed, by kind (network or server).",
		}, []string{"endpoint", "kind"}),
	}
	for _, c := range []prometheus.Collector{m.duration, m.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(endpoint, method string, status int, took time.Duration) {
	if m == nil {
		return
	}
	code := "none"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.duration.WithLabelValues(endpoint, method, code).Observe(took.Seconds())
}

func (m *Metrics) fail(endpoint, kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(endpoint, kind).Inc()
}
