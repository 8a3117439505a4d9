package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	AppointmentsCreated *prometheus.CounterVec
	BookingsRejected    *prometheus.CounterVec
	StatusTransitions   *prometheus.CounterVec
	OverbookedSlots     *prometheus.CounterVec
}

// New создает и регистрирует метрики в reg
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database call latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database calls",
		}, []string{"service", "operation"}),

		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		AppointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_created_total",
			Help: "Total number of created appointments",
		}, []string{"service"}),

		BookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_rejected_total",
			Help: "Total number of rejected booking attempts by reason",
		}, []string{"service", "reason"}),

		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_status_transitions_total",
			Help: "Total number of appointment status transitions",
		}, []string{"service", "from", "to"}),

		OverbookedSlots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_overbooked_slots_total",
			Help: "Number of times a slot was observed above capacity",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.AppointmentsCreated,
		m.BookingsRejected,
		m.StatusTransitions,
		m.OverbookedSlots,
	)

	return m
}

// AppointmentCreated учитывает созданную запись
func (m *Metrics) AppointmentCreated() {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(m.serviceName).Inc()
}

// BookingRejected учитывает отклоненную попытку записи
func (m *Metrics) BookingRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingsRejected.WithLabelValues(m.serviceName, reason).Inc()
}

// StatusChanged учитывает смену статуса записи
func (m *Metrics) StatusChanged(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(m.serviceName, from, to).Inc()
}

// SlotOverbooked учитывает слот, в котором записей больше лимита
func (m *Metrics) SlotOverbooked() {
	if m == nil {
		return
	}
	m.OverbookedSlots.WithLabelValues(m.serviceName).Inc()
}
