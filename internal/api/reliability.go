package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xela07ax/sensor-alert-console/internal/infra"
	"github.com/xela07ax/sensor-alert-console/internal/metrics"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ReliabilityWrapper ограничивает исходящий трафик к бекенду и отсекает
// заведомо мертвый бекенд через Circuit Breaker. Ретраев здесь нет:
// неудачная пользовательская операция завершается сразу, повтор — решение
// пользователя.
type ReliabilityWrapper struct {
	next    Doer
	cb      *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	metrics *metrics.Metrics
}

func NewReliabilityWrapper(next Doer, cfg infra.APIConfig, m *metrics.Metrics) *ReliabilityWrapper {
	if m == nil {
		m = metrics.NewMetrics(nil)
	}

	// Настройка предохранителя
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "alert-backend",
		MaxRequests: cfg.CBMaxRequests,
		Interval:    cfg.CBInterval,
		Timeout:     cfg.CBTimeout, // Время, через которое CB попробует "закрыться"
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Если более 5 транспортных ошибок подряд — открываемся
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				m.CircuitBreakerState.Set(1)
			} else {
				m.CircuitBreakerState.Set(0)
			}
		},
	})

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	return &ReliabilityWrapper{
		next:    next,
		cb:      cb,
		limiter: limiter,
		metrics: m,
	}
}

func (w *ReliabilityWrapper) Do(req *http.Request) (*http.Response, error) {
	// 1. Rate Limiter
	if err := w.limiter.Wait(req.Context()); err != nil {
		w.metrics.ErrorsTotal.WithLabelValues("rate_limit").Inc()
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	// 2. Circuit Breaker. Отказом считаем только транспортную ошибку:
	// прикладной success:false — это живой бекенд, предохранитель не трогаем.
	result, err := w.cb.Execute(func() (interface{}, error) {
		return w.next.Do(req)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			w.metrics.ErrorsTotal.WithLabelValues("breaker_open").Inc()
		}
		return nil, err
	}

	return result.(*http.Response), nil
}

// DefaultTransport — голый http.Client для standalone использования клиента.
func DefaultTransport(timeout time.Duration) Doer {
	return &http.Client{Timeout: timeout}
}
