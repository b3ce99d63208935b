package infra

import "fmt"

const (
	// APIPrefix Базовый префикс REST-контракта бекенда
	APIPrefix = "/api"
)

// Пути коллекций бекенда
const (
	PathAlertRules      = APIPrefix + "/alert-rules"
	PathAlertHistory    = APIPrefix + "/alert-history"
	PathAlertStatistics = APIPrefix + "/alert-statistics"
)

// RulePath — путь конкретного правила (PUT/DELETE).
func RulePath(id int64) string {
	return fmt.Sprintf("%s/%d", PathAlertRules, id)
}

// RuleTogglePath — выделенный endpoint переключения is_active.
func RuleTogglePath(id int64) string {
	return fmt.Sprintf("%s/%d/toggle", PathAlertRules, id)
}

// HistoryPath — история с серверным лимитом записей.
func HistoryPath(limit int) string {
	return fmt.Sprintf("%s?limit=%d", PathAlertHistory, limit)
}
