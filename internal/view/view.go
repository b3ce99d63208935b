package view

import "time"

// Notifier — поверхность транзиентных сообщений. Реализуется notify.Center.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}

// Confirmer — блокирующий диалог подтверждения деструктивного действия.
// false означает: пользователь передумал, в сеть не ходим вообще.
type Confirmer interface {
	Confirm(prompt string) bool
}

// FormatSentAt печатает дату отправки в формате консоли: "02/01/2006 às 15:04".
// Бекенд отдает строку SQLite без таймзоны; если она не парсится — показываем
// как есть, не падаем.
func FormatSentAt(raw string) string {
	t, err := time.Parse("2006-01-02 15:04:05", raw)
	if err != nil {
		return raw
	}
	return t.Format("02/01/2006 às 15:04")
}
