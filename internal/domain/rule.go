package domain

import (
	"errors"
	"fmt"
)

// Metric — измеряемая величина сенсора.
type Metric string

const (
	MetricCPU         Metric = "cpu"
	MetricRAM         Metric = "ram"
	MetricTemperature Metric = "temperatura"
	MetricPower       Metric = "potencia"
)

// Label возвращает человекочитаемое имя метрики для консоли.
func (m Metric) Label() string {
	switch m {
	case MetricCPU:
		return "CPU"
	case MetricRAM:
		return "RAM"
	case MetricTemperature:
		return "Temperatura"
	case MetricPower:
		return "Potência"
	default:
		// Неизвестную метрику показываем как есть, бекенд — источник истины
		return string(m)
	}
}

// Condition — тип порогового условия правила.
type Condition string

const (
	CondGreaterThan Condition = "greater_than"
	CondLessThan    Condition = "less_than"
	CondBetween     Condition = "between"
	CondOutside     Condition = "outside"
)

// NeedsRange сообщает, требует ли условие второй границы (threshold_max).
// Ровно это условие управляет видимостью поля "Valor Máximo" в форме.
func (c Condition) NeedsRange() bool {
	return c == CondBetween || c == CondOutside
}

// Valid проверяет, что условие входит в контракт бекенда.
func (c Condition) Valid() bool {
	switch c {
	case CondGreaterThan, CondLessThan, CondBetween, CondOutside:
		return true
	}
	return false
}

// AlertRule — правило алертинга, каким его отдает бекенд.
// is_active по проводу ходит как 0/1, created_at — строка формата SQLite
// (без таймзоны), поэтому не парсим ее в time.Time.
type AlertRule struct {
	ID              int64     `json:"id"`
	SensorType      string    `json:"sensor_type"`
	Metric          Metric    `json:"metric"`
	Condition       Condition `json:"condition"`
	ThresholdValue  float64   `json:"threshold_value"`
	ThresholdMax    *float64  `json:"threshold_max"`
	RecipientEmail  string    `json:"recipient_email"`
	CooldownMinutes int       `json:"cooldown_minutes"`
	IsActive        int       `json:"is_active"`
	CreatedAt       string    `json:"created_at"`
}

// Active интерпретирует транспортный флаг 0/1.
func (r *AlertRule) Active() bool {
	return r.IsActive != 0
}

var (
	ErrThresholdMaxRequired = errors.New("threshold_max is required for range conditions")
	ErrThresholdMaxExtra    = errors.New("threshold_max is only allowed for range conditions")
)

// Validate проверяет инвариант данных правила: вторая граница присутствует
// тогда и только тогда, когда условие интервальное.
func (r *AlertRule) Validate() error {
	if !r.Condition.Valid() {
		return fmt.Errorf("unknown condition %q", r.Condition)
	}
	if r.Condition.NeedsRange() && r.ThresholdMax == nil {
		return ErrThresholdMaxRequired
	}
	if !r.Condition.NeedsRange() && r.ThresholdMax != nil {
		return ErrThresholdMaxExtra
	}
	if r.CooldownMinutes < 1 {
		return fmt.Errorf("cooldown_minutes must be >= 1, got %d", r.CooldownMinutes)
	}
	if r.RecipientEmail == "" {
		return errors.New("recipient_email is required")
	}
	return nil
}

// FormatCondition печатает условие так же, как его рисовал список правил:
// "> 30", "< 30", "20 - 80", "fora de 20 - 80".
func (r *AlertRule) FormatCondition() string {
	switch r.Condition {
	case CondGreaterThan:
		return fmt.Sprintf("> %v", r.ThresholdValue)
	case CondLessThan:
		return fmt.Sprintf("< %v", r.ThresholdValue)
	case CondBetween:
		if r.ThresholdMax != nil {
			return fmt.Sprintf("%v - %v", r.ThresholdValue, *r.ThresholdMax)
		}
	case CondOutside:
		if r.ThresholdMax != nil {
			return fmt.Sprintf("fora de %v - %v", r.ThresholdValue, *r.ThresholdMax)
		}
	}
	return string(r.Condition)
}
