// Package metrics holds the Prometheus collectors of the server and worker.
package metrics

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "knowvalue"

// Metrics is nil-safe: every method on a nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter      *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
	WebhookEvents       *prometheus.CounterVec
	CheckoutSessions    *prometheus.CounterVec
	EventsProcessed     *prometheus.CounterVec
	NegotiationsExpired prometheus.Counter
	DBConnPool          *prometheus.GaugeVec
}

// New registers all collectors on a fresh registry, plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestCounter: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		WebhookEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "payment",
				Name:      "webhook_events_total",
				Help:      "Payment webhook deliveries by outcome",
			},
			[]string{"outcome"},
		),
		CheckoutSessions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "payment",
				Name:      "checkout_sessions_total",
				Help:      "Checkout sessions requested by kind and result",
			},
			[]string{"kind", "result"},
		),
		EventsProcessed: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "worker",
				Name:      "events_processed_total",
				Help:      "Domain events processed by the worker",
			},
			[]string{"event_type", "result"},
		),
		NegotiationsExpired: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "worker",
				Name:      "negotiations_expired_total",
				Help:      "PENDING negotiations rejected by the expiry sweep",
			},
		),
		DBConnPool: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "connection_pool",
				Help:      "Database connection pool statistics",
			},
			[]string{"stat"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestCounter.WithLabelValues(method, route, statusClass(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveWebhook(outcome string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCheckout(kind string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CheckoutSessions.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) ObserveEvent(eventType string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.EventsProcessed.WithLabelValues(eventType, result).Inc()
}

func (m *Metrics) ObserveExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.NegotiationsExpired.Add(float64(n))
}

// RecordDBPoolStats copies a pgx pool snapshot into the pool gauge.
func (m *Metrics) RecordDBPoolStats(stat *pgxpool.Stat) {
	if m == nil || stat == nil {
		return
	}
	m.DBConnPool.WithLabelValues("total").Set(float64(stat.TotalConns()))
	m.DBConnPool.WithLabelValues("acquired").Set(float64(stat.AcquiredConns()))
	m.DBConnPool.WithLabelValues("idle").Set(float64(stat.IdleConns()))
	m.DBConnPool.WithLabelValues("max").Set(float64(stat.MaxConns()))
	m.DBConnPool.WithLabelValues("empty_acquire_count").Set(float64(stat.EmptyAcquireCount()))
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
