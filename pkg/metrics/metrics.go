package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SweepsTotal          prometheus.Counter
	SweepFailuresTotal   prometheus.Counter
	AutoCancelledTotal   prometheus.Counter
	BookingsCreatedTotal prometheus.Counter
}

// BookingCreated увеличивает счетчик созданных броней
func (m *Metrics) BookingCreated() {
	m.BookingsCreatedTotal.Inc()
}

// SweepRun увеличивает счетчик прогонов автоотмены
func (m *Metrics) SweepRun() {
	m.SweepsTotal.Inc()
}

// SweepFailure увеличивает счетчик неудачных отмен
func (m *Metrics) SweepFailure() {
	m.SweepFailuresTotal.Inc()
}

// AutoCancelled увеличивает счетчик автоотмененных броней
func (m *Metrics) AutoCancelled() {
	m.AutoCancelledTotal.Inc()
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		SweepsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_expiry_sweeps_total",
			Help:        "Total number of expiry sweep runs",
			ConstLabels: labels,
		}),

		SweepFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_expiry_sweep_failures_total",
			Help:        "Total number of bookings the sweeper failed to cancel",
			ConstLabels: labels,
		}),

		AutoCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_auto_cancelled_total",
			Help:        "Total number of tentative bookings auto-cancelled by the sweeper",
			ConstLabels: labels,
		}),

		BookingsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings created",
			ConstLabels: labels,
		}),
	}
}
