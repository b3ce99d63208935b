package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RuleDraft — локальная редактируемая копия полей правила (черновик формы).
// Числовые поля держим строками: черновик хранит ровно то, что ввел
// пользователь, и при ошибке отправки остается нетронутым для повтора.
type RuleDraft struct {
	SensorType      string
	Metric          Metric
	Condition       Condition
	ThresholdValue  string
	ThresholdMax    string
	RecipientEmail  string
	CooldownMinutes int
}

// DefaultDraft возвращает значения по умолчанию новой формы.
func DefaultDraft() RuleDraft {
	return RuleDraft{
		SensorType:      "Sistema",
		Metric:          MetricTemperature,
		Condition:       CondGreaterThan,
		ThresholdValue:  "",
		ThresholdMax:    "",
		RecipientEmail:  "",
		CooldownMinutes: 30,
	}
}

// DraftFromRule готовит черновик для редактирования существующего правила.
func DraftFromRule(r AlertRule) RuleDraft {
	d := RuleDraft{
		SensorType:      r.SensorType,
		Metric:          r.Metric,
		Condition:       r.Condition,
		ThresholdValue:  strconv.FormatFloat(r.ThresholdValue, 'f', -1, 64),
		RecipientEmail:  r.RecipientEmail,
		CooldownMinutes: r.CooldownMinutes,
	}
	if r.ThresholdMax != nil {
		d.ThresholdMax = strconv.FormatFloat(*r.ThresholdMax, 'f', -1, 64)
	}
	return d
}

// Validate повторяет обязательность полей формы до похода в сеть.
func (d *RuleDraft) Validate() error {
	if strings.TrimSpace(d.SensorType) == "" {
		return errors.New("sensor_type is required")
	}
	if !d.Condition.Valid() {
		return fmt.Errorf("unknown condition %q", d.Condition)
	}
	if _, err := strconv.ParseFloat(d.ThresholdValue, 64); err != nil {
		return fmt.Errorf("threshold_value %q is not a number", d.ThresholdValue)
	}
	if d.Condition.NeedsRange() {
		if _, err := strconv.ParseFloat(d.ThresholdMax, 64); err != nil {
			return fmt.Errorf("threshold_max %q is not a number", d.ThresholdMax)
		}
	}
	if !strings.Contains(d.RecipientEmail, "@") {
		return fmt.Errorf("recipient_email %q is not an email", d.RecipientEmail)
	}
	if d.CooldownMinutes < 1 {
		return fmt.Errorf("cooldown_minutes must be >= 1, got %d", d.CooldownMinutes)
	}
	return nil
}

// Payload собирает JSON-тело запроса create/update.
// threshold_max попадает в тело только для интервальных условий: для
// greater_than/less_than поле скрыто и не входит в отправляемый набор.
func (d *RuleDraft) Payload() map[string]any {
	p := map[string]any{
		"sensor_type":      d.SensorType,
		"metric":           d.Metric,
		"condition":        d.Condition,
		"threshold_value":  d.ThresholdValue,
		"recipient_email":  d.RecipientEmail,
		"cooldown_minutes": d.CooldownMinutes,
	}
	if d.Condition.NeedsRange() {
		p["threshold_max"] = d.ThresholdMax
	}
	return p
}
