package infra

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config — корневая структура конфигурации консоли.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	History HistoryConfig `mapstructure:"history"`
	Warmup  WarmupConfig  `mapstructure:"warmup"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// APIConfig описывает подключение к бекенду алертинга.
// Пустой base_url означает относительные запросы (консоль и бекенд за одним
// хостом/прокси); в разработке указывается явный origin.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`

	// Настройки Circuit Breaker и лимитера исходящих запросов
	RateLimit     float64       `mapstructure:"rate_limit"`
	RateBurst     int           `mapstructure:"rate_burst"`
	CBMaxRequests uint32        `mapstructure:"cb_max_requests"`
	CBInterval    time.Duration `mapstructure:"cb_interval"`
	CBTimeout     time.Duration `mapstructure:"cb_timeout"`
}

// HistoryConfig управляет вкладкой истории.
type HistoryConfig struct {
	Limit int `mapstructure:"limit"` // сколько последних записей запрашивать
}

// WarmupConfig — стартовая проверка доступности бекенда.
type WarmupConfig struct {
	Attempts uint          `mapstructure:"attempts"`
	Delay    time.Duration `mapstructure:"delay"`
	Deadline time.Duration `mapstructure:"deadline"`
}

// ThemeConfig — где хранится выбранная тема оформления.
type ThemeConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig — отладочный HTTP-листенер (/metrics, /health).
// Пустой addr отключает листенер полностью.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggerConfig настраивает поведение zap логгера.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig инициализирует конфигурацию, объединяя значения из файла и ENV.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. Настройка поиска файла
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	// 2. ENV перекрывает файл: API_BASE_URL=http://host:5555 перекроет api.base_url
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 3. Дефолты
	setDefaults(v)

	// 4. Чтение файла
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Если файла нет — работаем на ENV и дефолтах
	}

	// 5. Маппинг в структуру
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5555")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.rate_limit", 20.0)
	v.SetDefault("api.rate_burst", 5)
	v.SetDefault("api.cb_max_requests", 3)
	v.SetDefault("api.cb_interval", 5*time.Second)
	v.SetDefault("api.cb_timeout", 30*time.Second)
	v.SetDefault("history.limit", 50)
	v.SetDefault("warmup.attempts", 4)
	v.SetDefault("warmup.delay", 500*time.Millisecond)
	v.SetDefault("warmup.deadline", 3*time.Second)
	v.SetDefault("theme.path", ".alert-console-theme")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
}
