package domain

// SensorCount — кол-во алертов по одному типу сенсора.
type SensorCount struct {
	SensorType string `json:"sensor_type"`
	Count      int64  `json:"count"`
}

// Statistics — агрегированный снимок для дашборда. Считается бекендом,
// консоль его только отображает.
type Statistics struct {
	TotalRules     int64         `json:"total_rules"`
	ActiveRules    int64         `json:"active_rules"`
	TotalAlerts    int64         `json:"total_alerts"`
	AlertsToday    int64         `json:"alerts_today"`
	AlertsBySensor []SensorCount `json:"alerts_by_sensor"`
}
