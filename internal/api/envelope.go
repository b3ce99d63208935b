package api

import "encoding/json"

// Envelope — стандартный конверт ответа бекенда.
// Успех: {"success": true, "data": ...}
// Отказ: {"success": false, "error": "..."}
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}
