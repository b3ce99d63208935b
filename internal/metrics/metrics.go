package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Latency: сколько времени занял поход в бекенд
	RequestDuration *prometheus.HistogramVec

	// Traffic: общее кол-во запросов к бекенду
	RequestsTotal *prometheus.CounterVec

	// Errors: классификация отказов
	ErrorsTotal *prometheus.CounterVec

	// Сколько рассылок инвалидации разошлось по вьюхам
	RefreshFanout prometheus.Counter

	// Сколько устаревших (перекрытых новой версией) ответов отброшено
	StaleDropped prometheus.Counter

	// Показанные пользователю уведомления по уровням
	NotificationsTotal *prometheus.CounterVec

	// Saturation: состояние Circuit Breaker (0 - ок, 1 - выбило)
	CircuitBreakerState prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Null Object Pattern - Если рег не передан, используем локальный, который никуда не подключен
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_request_duration_seconds",
			Help:    "Histogram of backend request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "endpoint", "status"}),

		RequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_requests_total",
			Help: "Total number of backend requests.",
		}, []string{"method", "endpoint"}),

		ErrorsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_errors_total",
			Help: "Total number of errors by type.",
		}, []string{"type"}), // типы: transport, backend, rate_limit, breaker_open

		RefreshFanout: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "console_refresh_fanout_total",
			Help: "Total number of invalidation signals delivered to views.",
		}),

		StaleDropped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "console_stale_responses_dropped_total",
			Help: "Responses discarded because a newer version was already rendered.",
		}),

		NotificationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_notifications_total",
			Help: "User-facing notifications shown, by level.",
		}, []string{"level"}),

		CircuitBreakerState: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "console_circuit_breaker_state",
			Help: "Current state of the backend circuit breaker (0=closed, 1=open).",
		}),
	}
}
