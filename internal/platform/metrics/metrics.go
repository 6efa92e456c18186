package metrics

import (
	"time"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics holds the Prometheus collectors for the ledger service.
type Metrics struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	TotalSupply       prometheus.Gauge
	EventsPublished   prometheus.Counter
	EventsDropped     *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	RateLimited       prometheus.Counter
}

// New registers all collectors with reg. Tests pass a fresh registry so
// repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerd_operations_total",
			Help: "Controller operations by name and outcome code",
		}, []string{"op", "outcome"}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledgerd_operation_duration_seconds",
			Help:    "Controller operation latency including the store commit",
			Buckets: latencyBuckets,
		}, []string{"op"}),
		TotalSupply: f.NewGauge(prometheus.GaugeOpts{
			Name: "ledgerd_total_supply",
			Help: "Current total supply; precision is lost above 2^53",
		}),
		EventsPublished: f.NewCounter(prometheus.CounterOpts{
			Name: "ledgerd_events_published_total",
			Help: "Ledger events delivered to the configured sink",
		}),
		EventsDropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgerd_events_dropped_total",
			Help: "Ledger events not delivered, by reason",
		}, []string{"reason"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledgerd_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: latencyBuckets,
		}, []string{"route", "status"}),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "ledgerd_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
	}
}

// ObserveOperation records one controller operation. Call with the time the
// operation started.
func (m *Metrics) ObserveOperation(op, outcome string, start time.Time) {
	m.Operations.WithLabelValues(op, outcome).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) SetTotalSupply(v *uint256.Int) {
	m.TotalSupply.Set(v.Float64())
}

func (m *Metrics) IncrementEventsPublished(n int) {
	m.EventsPublished.Add(float64(n))
}

func (m *Metrics) IncrementEventsDropped(reason string) {
	m.EventsDropped.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveHTTP(route, status string, d time.Duration) {
	m.HTTPDuration.WithLabelValues(route, status).Observe(d.Seconds())
}

func (m *Metrics) IncrementRateLimited() {
	m.RateLimited.Inc()
}
