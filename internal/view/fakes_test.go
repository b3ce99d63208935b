package view

import (
	"context"
	"sync"

	"github.com/xela07ax/sensor-alert-console/internal/domain"
)

// fakeAPI покрывает все потребительские интерфейсы вьюх.
type fakeAPI struct {
	mu sync.Mutex

	rules    []domain.AlertRule
	listErr  error
	listN    int
	listFn   func() ([]domain.AlertRule, error) // перекрывает rules/listErr, если задана

	toggleErr error
	toggled   []int // отправленные значения is_active
	toggleIDs []int64

	deleteErr error
	deleted   []int64

	history    []domain.AlertHistoryItem
	historyErr error
	historyN   int

	stats    *domain.Statistics
	statsErr error

	createErr error
	created   []domain.RuleDraft
	updateErr error
	updated   map[int64]domain.RuleDraft
	block   chan struct{} // если задан, create блокируется до закрытия
	started chan struct{} // закрывается при входе в CreateRule
}

func (f *fakeAPI) ListRules(ctx context.Context) ([]domain.AlertRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listN++
	if f.listFn != nil {
		return f.listFn()
	}
	return f.rules, f.listErr
}

func (f *fakeAPI) ToggleRule(ctx context.Context, id int64, isActive int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggleIDs = append(f.toggleIDs, id)
	f.toggled = append(f.toggled, isActive)
	return f.toggleErr
}

func (f *fakeAPI) DeleteRule(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeAPI) History(ctx context.Context, limit int) ([]domain.AlertHistoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyN++
	return f.history, f.historyErr
}

func (f *fakeAPI) Statistics(ctx context.Context) (*domain.Statistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats, f.statsErr
}

func (f *fakeAPI) CreateRule(ctx context.Context, d domain.RuleDraft) error {
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, d)
	return f.createErr
}

func (f *fakeAPI) UpdateRule(ctx context.Context, id int64, d domain.RuleDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updated == nil {
		f.updated = map[int64]domain.RuleDraft{}
	}
	f.updated[id] = d
	return f.updateErr
}

func (f *fakeAPI) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listN
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, title+": "+message)
}

func (n *fakeNotifier) Error(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, title+": "+message)
}

type fakeConfirmer struct {
	answer bool
	asked  int
}

func (c *fakeConfirmer) Confirm(prompt string) bool {
	c.asked++
	return c.answer
}

func activeRule(id int64) domain.AlertRule {
	return domain.AlertRule{
		ID:              id,
		SensorType:      "Sistema",
		Metric:          domain.MetricCPU,
		Condition:       domain.CondGreaterThan,
		ThresholdValue:  90,
		RecipientEmail:  "a@b.com",
		CooldownMinutes: 30,
		IsActive:        1,
	}
}
