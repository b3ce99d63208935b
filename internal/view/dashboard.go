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

// StatsAPI Описываем, что дашборду нужно от клиента API
type StatsAPI interface {
	Statistics(ctx context.Context) (*domain.Statistics, error)
}

// DashboardView — read-only вкладка агрегированных счетчиков.
type DashboardView struct {
	mu          sync.Mutex
	stats       *domain.Statistics
	loaded      bool
	lastApplied uint64

	api     StatsAPI
	notify  Notifier
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewDashboardView(api StatsAPI, notify Notifier, logger *zap.Logger, m *metrics.Metrics) *DashboardView {
	if m == nil {
		m = metrics.NewMetrics(nil)
	}
	return &DashboardView{
		api:     api,
		notify:  notify,
		logger:  logger.Named("dashboard"),
		metrics: m,
	}
}

func (d *DashboardView) OnInvalidate(ctx context.Context, version uint64) {
	stats, err := d.api.Statistics(ctx)

	d.mu.Lock()
	if version < d.lastApplied {
		d.mu.Unlock()
		d.metrics.StaleDropped.Inc()
		d.logger.Debug("dropping superseded stats response", zap.Uint64("version", version))
		return
	}
	d.lastApplied = version
	// Фетч завершен: даже при ошибке дашборд выходит из состояния загрузки
	d.loaded = true
	if err == nil {
		d.stats = stats
	}
	d.mu.Unlock()

	if err != nil {
		d.notify.Error("Erro", "Erro ao carregar estatísticas")
		d.logger.Debug("stats fetch failed", zap.Error(err))
	}
}

// Stats возвращает текущий снимок (nil, пока не было успешной загрузки).
func (d *DashboardView) Stats() *domain.Statistics {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

func (d *DashboardView) Render(w io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		fmt.Fprintln(w, "Carregando estatísticas...")
		return
	}
	if d.stats == nil {
		fmt.Fprintln(w, "Erro ao carregar estatísticas")
		return
	}

	s := d.stats
	fmt.Fprintf(w, "Total de Regras:  %d (%d ativas)\n", s.TotalRules, s.ActiveRules)
	fmt.Fprintf(w, "Regras Ativas:    %d\n", s.ActiveRules)
	fmt.Fprintf(w, "Alertas Hoje:     %d\n", s.AlertsToday)
	fmt.Fprintf(w, "Total de Alertas: %d\n", s.TotalAlerts)

	if len(s.AlertsBySensor) > 0 {
		fmt.Fprintln(w, "Alertas por Tipo de Sensor:")
		for _, sc := range s.AlertsBySensor {
			fmt.Fprintf(w, "  %s: %d alertas\n", sc.SensorType, sc.Count)
		}
	}
}
