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

// RulesAPI Описываем, что списку правил нужно от клиента API
type RulesAPI interface {
	ListRules(ctx context.Context) ([]domain.AlertRule, error)
	ToggleRule(ctx context.Context, id int64, isActive int) error
	DeleteRule(ctx context.Context, id int64) error
}

// RuleList — вкладка со списком правил и мутациями toggle/delete.
// По каждому сигналу инвалидации перечитывает коллекцию целиком и заменяет
// локальное состояние оптом: ни инкрементальных патчей, ни оптимистичных
// правок UI.
type RuleList struct {
	mu          sync.Mutex
	rules       []domain.AlertRule
	loaded      bool
	lastApplied uint64

	api       RulesAPI
	notify    Notifier
	confirm   Confirmer
	onChanged func()
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewRuleList(api RulesAPI, notify Notifier, confirm Confirmer, onChanged func(), logger *zap.Logger, m *metrics.Metrics) *RuleList {
	if m == nil {
		m = metrics.NewMetrics(nil)
	}
	return &RuleList{
		api:       api,
		notify:    notify,
		confirm:   confirm,
		onChanged: onChanged,
		logger:    logger.Named("rule-list"),
		metrics:   m,
	}
}

// OnInvalidate перечитывает список. Ответ, перекрытый более новой версией,
// отбрасывается: последняя отрисованная версия только растет.
func (l *RuleList) OnInvalidate(ctx context.Context, version uint64) {
	rules, err := l.api.ListRules(ctx)

	l.mu.Lock()
	if version < l.lastApplied {
		l.mu.Unlock()
		l.metrics.StaleDropped.Inc()
		l.logger.Debug("dropping superseded rules response", zap.Uint64("version", version))
		return
	}
	l.lastApplied = version
	// Загрузка завершилась в любом случае: плейсхолдер "Carregando" уходит,
	// при ошибке на экране остается прошлый снимок (или пустое состояние)
	l.loaded = true
	if err == nil {
		l.rules = rules
	}
	l.mu.Unlock()

	if err != nil {
		// Прошлый успешный снимок остается на экране
		l.notify.Error("Erro", "Erro ao carregar regras")
		l.logger.Debug("rules fetch failed", zap.Error(err))
	}
}

// Rules возвращает текущий снимок.
func (l *RuleList) Rules() []domain.AlertRule {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.AlertRule, len(l.rules))
	copy(out, l.rules)
	return out
}

// Rule ищет правило по id в текущем снимке.
func (l *RuleList) Rule(id int64) (domain.AlertRule, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.rules {
		if r.ID == id {
			return r, true
		}
	}
	return domain.AlertRule{}, false
}

// Toggle шлет ИНВЕРСИЮ текущего is_active на выделенный endpoint.
// UI не переключаем оптимистично: на успехе родитель инициирует refetch,
// и все вкладки перечитают данные.
func (l *RuleList) Toggle(ctx context.Context, id int64) {
	rule, ok := l.Rule(id)
	if !ok {
		l.notify.Error("Erro", fmt.Sprintf("Regra %d não encontrada", id))
		return
	}

	next := 1
	if rule.Active() {
		next = 0
	}

	if err := l.api.ToggleRule(ctx, id, next); err != nil {
		l.notify.Error("Erro", "Erro ao atualizar status")
		l.logger.Debug("toggle failed", zap.Int64("rule_id", id), zap.Error(err))
		return
	}

	if rule.Active() {
		l.notify.Success("Status atualizado", "Regra desativada")
	} else {
		l.notify.Success("Status atualizado", "Regra ativada")
	}
	l.onChanged()
}

// Delete требует явного подтверждения ДО отправки запроса.
// Отмена диалога не порождает ни одного сетевого вызова.
func (l *RuleList) Delete(ctx context.Context, id int64) {
	if _, ok := l.Rule(id); !ok {
		l.notify.Error("Erro", fmt.Sprintf("Regra %d não encontrada", id))
		return
	}

	if !l.confirm.Confirm("Excluir regra? Esta ação não pode ser desfeita.") {
		return
	}

	if err := l.api.DeleteRule(ctx, id); err != nil {
		l.notify.Error("Erro", "Erro ao excluir regra")
		l.logger.Debug("delete failed", zap.Int64("rule_id", id), zap.Error(err))
		return
	}

	l.notify.Success("Regra excluída", "A regra foi excluída com sucesso")
	l.onChanged()
}

// Render рисует вкладку. Загрузка и пустая коллекция — отдельные заглушки.
func (l *RuleList) Render(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		fmt.Fprintln(w, "Carregando regras...")
		return
	}
	if len(l.rules) == 0 {
		fmt.Fprintln(w, "Nenhuma regra cadastrada. Crie sua primeira regra na aba \"Nova Regra\".")
		return
	}

	for _, r := range l.rules {
		badge := "Inativa"
		if r.Active() {
			badge = "Ativa"
		}
		fmt.Fprintf(w, "[%d] %s - %s (%s)\n", r.ID, r.SensorType, r.Metric.Label(), badge)
		fmt.Fprintf(w, "    Condição: %s\n", r.FormatCondition())
		fmt.Fprintf(w, "    Email: %s\n", r.RecipientEmail)
		fmt.Fprintf(w, "    Cooldown: %d minutos\n", r.CooldownMinutes)
	}
}
