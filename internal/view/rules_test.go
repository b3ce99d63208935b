package view

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xela07ax/sensor-alert-console/internal/api"
	"github.com/xela07ax/sensor-alert-console/internal/domain"

	"go.uber.org/zap"
)

func newRuleList(api *fakeAPI, notify *fakeNotifier, confirm *fakeConfirmer, onChanged func()) *RuleList {
	if notify == nil {
		notify = &fakeNotifier{}
	}
	if confirm == nil {
		confirm = &fakeConfirmer{answer: true}
	}
	if onChanged == nil {
		onChanged = func() {}
	}
	return NewRuleList(api, notify, confirm, onChanged, zap.NewNop(), nil)
}

func TestRulesInvalidateReplacesSnapshot(t *testing.T) {
	apiFake := &fakeAPI{rules: []domain.AlertRule{activeRule(1), activeRule(2)}}
	l := newRuleList(apiFake, nil, nil, nil)

	l.OnInvalidate(context.Background(), 1)
	if got := len(l.Rules()); got != 2 {
		t.Fatalf("rules = %d, want 2", got)
	}

	// Повторная инвалидация заменяет коллекцию оптом, а не дописывает
	apiFake.mu.Lock()
	apiFake.rules = []domain.AlertRule{activeRule(3)}
	apiFake.mu.Unlock()
	l.OnInvalidate(context.Background(), 2)

	rules := l.Rules()
	if len(rules) != 1 || rules[0].ID != 3 {
		t.Errorf("rules after second invalidate = %+v, want only id 3", rules)
	}
}

func TestRulesFetchFailureKeepsSnapshot(t *testing.T) {
	apiFake := &fakeAPI{rules: []domain.AlertRule{activeRule(1)}}
	notify := &fakeNotifier{}
	l := newRuleList(apiFake, notify, nil, nil)

	l.OnInvalidate(context.Background(), 1)

	apiFake.mu.Lock()
	apiFake.listErr = errors.New("connection refused")
	apiFake.mu.Unlock()
	l.OnInvalidate(context.Background(), 2)

	if got := len(l.Rules()); got != 1 {
		t.Errorf("rules after failed fetch = %d, want previous snapshot of 1", got)
	}
	if want := "Erro: Erro ao carregar regras"; len(notify.errors) != 1 || notify.errors[0] != want {
		t.Errorf("notifications = %v, want [%q]", notify.errors, want)
	}
	if len(notify.successes) != 0 {
		t.Errorf("success notifications on failure: %v", notify.successes)
	}
}

func TestRulesFirstLoadFailureLeavesLoadingState(t *testing.T) {
	apiFake := &fakeAPI{listErr: &api.APIError{Message: "db down"}}
	notify := &fakeNotifier{}
	l := newRuleList(apiFake, notify, nil, nil)

	l.OnInvalidate(context.Background(), 1)

	// Неудачный первый фетч завершает загрузку: рисуем пустое состояние,
	// а не вечный плейсхолдер
	var buf bytes.Buffer
	l.Render(&buf)
	if strings.Contains(buf.String(), "Carregando") {
		t.Errorf("still rendering loading placeholder: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Nenhuma regra cadastrada") {
		t.Errorf("empty state not rendered: %q", buf.String())
	}
	if len(notify.errors) != 1 {
		t.Errorf("error notifications = %v, want exactly one", notify.errors)
	}
}

func TestRulesStaleResponseDropped(t *testing.T) {
	ruleA := activeRule(1)
	ruleB := activeRule(2)

	apiFake := &fakeAPI{}
	l := newRuleList(apiFake, nil, nil, nil)

	// Версия 2 применилась первой
	apiFake.listFn = func() ([]domain.AlertRule, error) { return []domain.AlertRule{ruleA}, nil }
	l.OnInvalidate(context.Background(), 2)

	// Запоздавший ответ версии 1 несет другие данные — его нужно отбросить
	apiFake.mu.Lock()
	apiFake.listFn = func() ([]domain.AlertRule, error) { return []domain.AlertRule{ruleB}, nil }
	apiFake.mu.Unlock()
	l.OnInvalidate(context.Background(), 1)

	rules := l.Rules()
	if len(rules) != 1 || rules[0].ID != ruleA.ID {
		t.Errorf("rules = %+v, want stale response dropped and id 1 kept", rules)
	}
}

func TestToggleSendsInverseState(t *testing.T) {
	active := activeRule(1)
	inactive := activeRule(2)
	inactive.IsActive = 0

	apiFake := &fakeAPI{rules: []domain.AlertRule{active, inactive}}
	notify := &fakeNotifier{}
	changed := 0
	l := newRuleList(apiFake, notify, nil, func() { changed++ })
	l.OnInvalidate(context.Background(), 1)

	l.Toggle(context.Background(), 1)
	l.Toggle(context.Background(), 2)

	if want := []int{0, 1}; len(apiFake.toggled) != 2 || apiFake.toggled[0] != want[0] || apiFake.toggled[1] != want[1] {
		t.Errorf("toggled states = %v, want %v", apiFake.toggled, want)
	}
	if changed != 2 {
		t.Errorf("onChanged calls = %d, want 2", changed)
	}
	if len(notify.successes) != 2 ||
		!strings.Contains(notify.successes[0], "desativada") ||
		!strings.Contains(notify.successes[1], "ativada") {
		t.Errorf("notifications = %v", notify.successes)
	}
}

func TestToggleFailureDoesNotInvalidate(t *testing.T) {
	apiFake := &fakeAPI{
		rules:     []domain.AlertRule{activeRule(1)},
		toggleErr: errors.New("boom"),
	}
	notify := &fakeNotifier{}
	l := newRuleList(apiFake, notify, nil, func() { t.Fatal("onChanged called on failure") })
	l.OnInvalidate(context.Background(), 1)

	l.Toggle(context.Background(), 1)

	if want := "Erro: Erro ao atualizar status"; len(notify.errors) != 1 || notify.errors[0] != want {
		t.Errorf("notifications = %v, want [%q]", notify.errors, want)
	}
}

func TestDeleteCancelledSkipsRequest(t *testing.T) {
	apiFake := &fakeAPI{rules: []domain.AlertRule{activeRule(1)}}
	confirm := &fakeConfirmer{answer: false}
	l := newRuleList(apiFake, nil, confirm, func() { t.Fatal("onChanged called after cancel") })
	l.OnInvalidate(context.Background(), 1)

	l.Delete(context.Background(), 1)

	if confirm.asked != 1 {
		t.Fatalf("confirmations = %d, want 1", confirm.asked)
	}
	if len(apiFake.deleted) != 0 {
		t.Errorf("DeleteRule calls = %v, want none after cancel", apiFake.deleted)
	}
}

func TestDeleteConfirmedIssuesRequest(t *testing.T) {
	apiFake := &fakeAPI{rules: []domain.AlertRule{activeRule(5)}}
	notify := &fakeNotifier{}
	changed := 0
	l := newRuleList(apiFake, notify, &fakeConfirmer{answer: true}, func() { changed++ })
	l.OnInvalidate(context.Background(), 1)

	l.Delete(context.Background(), 5)

	if len(apiFake.deleted) != 1 || apiFake.deleted[0] != 5 {
		t.Fatalf("DeleteRule calls = %v, want [5]", apiFake.deleted)
	}
	if changed != 1 {
		t.Errorf("onChanged calls = %d, want 1", changed)
	}
	if len(notify.successes) != 1 {
		t.Errorf("success notifications = %v", notify.successes)
	}
}

func TestRulesRenderPlaceholders(t *testing.T) {
	apiFake := &fakeAPI{}
	l := newRuleList(apiFake, nil, nil, nil)

	var buf bytes.Buffer
	l.Render(&buf)
	if !strings.Contains(buf.String(), "Carregando regras") {
		t.Errorf("before load: %q", buf.String())
	}

	l.OnInvalidate(context.Background(), 1)
	buf.Reset()
	l.Render(&buf)
	if !strings.Contains(buf.String(), "Nenhuma regra cadastrada") {
		t.Errorf("empty collection: %q", buf.String())
	}

	apiFake.mu.Lock()
	apiFake.rules = []domain.AlertRule{activeRule(1)}
	apiFake.mu.Unlock()
	l.OnInvalidate(context.Background(), 2)
	buf.Reset()
	l.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, "Ativa") || !strings.Contains(out, "> 90") {
		t.Errorf("rendered list: %q", out)
	}
}
