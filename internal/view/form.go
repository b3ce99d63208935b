package view

import (
	"context"
	"sync"

	"github.com/xela07ax/sensor-alert-console/internal/api"
	"github.com/xela07ax/sensor-alert-console/internal/domain"

	"go.uber.org/zap"
)

// RuleWriter Описываем, что форме нужно от клиента API
type RuleWriter interface {
	CreateRule(ctx context.Context, d domain.RuleDraft) error
	UpdateRule(ctx context.Context, id int64, d domain.RuleDraft) error
}

// RuleForm — форма создания/редактирования одного правила.
// ruleID == nil выбирает POST нового правила, иначе PUT существующего.
type RuleForm struct {
	mu      sync.Mutex
	draft   domain.RuleDraft
	ruleID  *int64
	busy    bool
	writer  RuleWriter
	notify  Notifier
	onSaved func() // единственный канал, по которому родитель узнает о мутации
	logger  *zap.Logger
}

func NewRuleForm(writer RuleWriter, notify Notifier, onSaved func(), logger *zap.Logger) *RuleForm {
	return &RuleForm{
		draft:   domain.DefaultDraft(),
		writer:  writer,
		notify:  notify,
		onSaved: onSaved,
		logger:  logger.Named("rule-form"),
	}
}

// StartEdit предзаполняет форму данными правила: дальше Submit пойдет PUT-ом.
func (f *RuleForm) StartEdit(r domain.AlertRule) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := r.ID
	f.ruleID = &id
	f.draft = domain.DraftFromRule(r)
}

// StartCreate сбрасывает форму в режим создания с дефолтными полями.
func (f *RuleForm) StartCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ruleID = nil
	f.draft = domain.DefaultDraft()
}

// Draft возвращает текущий черновик (копию).
func (f *RuleForm) Draft() domain.RuleDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// SetDraft заменяет черновик введенными значениями.
func (f *RuleForm) SetDraft(d domain.RuleDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = d
}

// Editing сообщает, редактируем ли существующее правило.
func (f *RuleForm) Editing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ruleID != nil
}

// Busy — идет ли отправка; рисует индикатор на submit-контроле.
func (f *RuleForm) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// ShowMaxThreshold — видимость поля "Valor Máximo":
// строго для интервальных условий (between/outside).
func (f *RuleForm) ShowMaxThreshold() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Condition.NeedsRange()
}

// Submit сериализует черновик и отправляет create/update.
// Успех: уведомление, сброс черновика (только create), сигнал родителю.
// Отказ: уведомление с серверным текстом если есть; черновик не трогаем,
// чтобы пользователь мог повторить.
func (f *RuleForm) Submit(ctx context.Context) {
	f.mu.Lock()
	if f.busy {
		// Повторный сабмит, пока первый в полете — молча игнорируем
		f.mu.Unlock()
		return
	}
	f.busy = true
	draft := f.draft
	ruleID := f.ruleID
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}()

	if err := draft.Validate(); err != nil {
		f.notify.Error("Erro", err.Error())
		return
	}

	var err error
	if ruleID != nil {
		err = f.writer.UpdateRule(ctx, *ruleID, draft)
	} else {
		err = f.writer.CreateRule(ctx, draft)
	}

	if err != nil {
		msg := api.ServerMessage(err)
		if msg == "" {
			msg = "Erro ao salvar regra"
		}
		f.notify.Error("Erro", msg)
		f.logger.Debug("rule save failed", zap.Error(err))
		return
	}

	if ruleID != nil {
		f.notify.Success("Regra atualizada!", "A regra de alerta foi atualizada com sucesso.")
	} else {
		f.notify.Success("Regra criada!", "A regra de alerta foi criada com sucesso.")
		f.mu.Lock()
		f.draft = domain.DefaultDraft()
		f.mu.Unlock()
	}

	f.onSaved()
}
