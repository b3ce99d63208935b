package view

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/xela07ax/sensor-alert-console/internal/domain"
	"github.com/xela07ax/sensor-alert-console/internal/metrics"

	"go.uber.org/zap"
)

// HistoryAPI Описываем, что истории нужно от клиента API
type HistoryAPI interface {
	History(ctx context.Context, limit int) ([]domain.AlertHistoryItem, error)
}

// HistoryView — read-only вкладка истории отправок.
// Мутаций нет; limit последних записей задает конфиг (сервер может резать
// сильнее).
type HistoryView struct {
	mu          sync.Mutex
	items       []domain.AlertHistoryItem
	loaded      bool
	lastApplied uint64

	api     HistoryAPI
	limit   int
	notify  Notifier
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewHistoryView(api HistoryAPI, limit int, notify Notifier, logger *zap.Logger, m *metrics.Metrics) *HistoryView {
	if limit <= 0 {
		limit = 50
	}
	if m == nil {
		m = metrics.NewMetrics(nil)
	}
	return &HistoryView{
		api:     api,
		limit:   limit,
		notify:  notify,
		logger:  logger.Named("history"),
		metrics: m,
	}
}

func (h *HistoryView) OnInvalidate(ctx context.Context, version uint64) {
	items, err := h.api.History(ctx, h.limit)

	h.mu.Lock()
	if version < h.lastApplied {
		h.mu.Unlock()
		h.metrics.StaleDropped.Inc()
		h.logger.Debug("dropping superseded history response", zap.Uint64("version", version))
		return
	}
	h.lastApplied = version
	// Фетч завершен: даже при ошибке вкладка выходит из состояния загрузки
	h.loaded = true
	if err == nil {
		h.items = items
	}
	h.mu.Unlock()

	if err != nil {
		h.notify.Error("Erro", "Erro ao carregar histórico")
		h.logger.Debug("history fetch failed", zap.Error(err))
	}
}

// Items возвращает текущий снимок.
func (h *HistoryView) Items() []domain.AlertHistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.AlertHistoryItem, len(h.items))
	copy(out, h.items)
	return out
}

// Render рисует список: у каждой записи статусная пометка, полный текст
// письма свернут (раскрывается командой show).
func (h *HistoryView) Render(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.loaded {
		fmt.Fprintln(w, "Carregando histórico...")
		return
	}
	if len(h.items) == 0 {
		fmt.Fprintln(w, "Nenhum alerta foi enviado ainda.")
		return
	}

	for _, it := range h.items {
		mark, badge := "✗", "Falhou"
		if it.Delivered() {
			mark, badge = "✓", "Enviado"
		}
		fmt.Fprintf(w, "[%d] %s %s - %s (%s)\n", it.ID, mark, it.SensorType, it.Metric.Label(), badge)
		fmt.Fprintf(w, "    Valor detectado: %v\n", it.SensorValue)
		fmt.Fprintf(w, "    Destinatário: %s\n", it.RecipientEmail)
		fmt.Fprintf(w, "    Data: %s\n", FormatSentAt(it.SentAt))
	}
	fmt.Fprintln(w, "Use \"show <id>\" para ver a mensagem completa.")
}

// RenderDetail раскрывает полный текст сообщения одной записи.
func (h *HistoryView) RenderDetail(w io.Writer, id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, it := range h.items {
		if it.ID == id {
			fmt.Fprintf(w, "Mensagem completa do alerta %d:\n%s\n", id, it.Message)
			return
		}
	}
	fmt.Fprintf(w, "Alerta %d não encontrado no histórico carregado.\n", id)
}
