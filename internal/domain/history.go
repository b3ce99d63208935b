package domain

// EmailStatus — итог попытки отправки письма.
type EmailStatus string

const (
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

// AlertHistoryItem — неизменяемая запись одной попытки отправки алерта.
// Поля правила денормализованы на момент отправки: это снимок, а не
// live-join к текущему правилу (правило могло измениться или исчезнуть).
type AlertHistoryItem struct {
	ID          int64       `json:"id"`
	RuleID      int64       `json:"rule_id"`
	SensorValue float64     `json:"sensor_value"`
	Message     string      `json:"message"`
	SentAt      string      `json:"sent_at"`
	EmailStatus EmailStatus `json:"email_status"`

	// Снимок правила на момент срабатывания
	SensorType     string    `json:"sensor_type"`
	Metric         Metric    `json:"metric"`
	Condition      Condition `json:"condition"`
	ThresholdValue float64   `json:"threshold_value"`
	RecipientEmail string    `json:"recipient_email"`
}

// Delivered сообщает, дошло ли письмо.
func (i *AlertHistoryItem) Delivered() bool {
	return i.EmailStatus == EmailSent
}
