package api

import "errors"

// APIError — прикладной отказ: бекенд ответил корректным конвертом,
// но success:false. Message — текст ошибки с сервера (может быть пустым).
// Все остальные ошибки клиента — транспортные (сеть, не-JSON ответ).
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "backend rejected the request"
	}
	return e.Message
}

// ServerMessage достает серверный текст ошибки, если он есть.
// Пустая строка означает: покажи пользователю общий текст фоллбека.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
