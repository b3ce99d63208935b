package refresh

import (
	"context"
	"sync"

	"github.com/xela07ax/sensor-alert-console/internal/metrics"

	"go.uber.org/zap"
)

// Refreshable — вьюха, умеющая перечитать свои данные по сигналу инвалидации.
// version — монотонный номер публикации; вьюха обязана отбросить результат,
// если к моменту его применения уже отрисована более новая версия.
type Refreshable interface {
	OnInvalidate(ctx context.Context, version uint64)
}

// Hub — единственная точка синхронизации между вьюхами.
// Ни одна вьюха не получает чужие данные напрямую: координация происходит
// исключительно принуждением каждого подписчика к независимому refetch.
type Hub struct {
	mu      sync.Mutex
	version uint64
	subs    []Refreshable
	wg      sync.WaitGroup
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewHub(logger *zap.Logger, m *metrics.Metrics) *Hub {
	if m == nil {
		m = metrics.NewMetrics(nil)
	}
	return &Hub{
		logger:  logger.Named("refresh-hub"),
		metrics: m,
	}
}

// Subscribe регистрирует подписчика. Данные он получит при следующей
// публикации — "маунт" вьюхи это первый Invalidate после сборки.
func (h *Hub) Subscribe(r Refreshable) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = append(h.subs, r)
}

// Invalidate публикует новую версию: ровно один инкремент на мутацию.
// Каждый подписчик получает сигнал в своей горутине — медленная вьюха не
// тормозит остальных. Абсолютное значение версии никто не интерпретирует,
// важна только монотонность для отбраковки перекрытых ответов.
func (h *Hub) Invalidate(ctx context.Context) uint64 {
	h.mu.Lock()
	h.version++
	v := h.version
	subs := make([]Refreshable, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	h.logger.Debug("publishing invalidation",
		zap.Uint64("version", v),
		zap.Int("subscribers", len(subs)),
	)

	for _, s := range subs {
		h.wg.Add(1)
		h.metrics.RefreshFanout.Inc()
		go func(r Refreshable) {
			defer h.wg.Done()
			r.OnInvalidate(ctx, v)
		}(s)
	}
	return v
}

// Version возвращает последнюю опубликованную версию.
func (h *Hub) Version() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.version
}

// Wait блокируется до завершения всех текущих рассылок.
// Нужен консоли, чтобы рисовать вкладку уже по свежим данным, и тестам.
func (h *Hub) Wait() {
	h.wg.Wait()
}
