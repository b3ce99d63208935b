package notify

/*
Файл center.go реализует очередь транзиентных уведомлений консоли.

Архитектура повторяет наш буферизованный аудит: вход через неблокирующий
канал, один воркер-потребитель, Drain Pattern на остановке. Уведомление —
короткоживущий объект: если воркер добрался до него после expires_at
(консоль была занята блокирующим вводом), оно уже неактуально и молча
отбрасывается вместо показа.
*/

import (
	"sync"
	"time"

	"github.com/xela07ax/sensor-alert-console/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Level — уровень уведомления.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification — одно транзиентное сообщение пользователю.
type Notification struct {
	ID        string
	Level     Level
	Title     string
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Sink — куда физически показываются уведомления (консольный рендерер).
type Sink interface {
	Show(n Notification)
}

type Center struct {
	ch      chan Notification
	sink    Sink
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
	wg      sync.WaitGroup

	// closeMu сериализует вход в канал со Stop: пока держится RLock,
	// канал гарантированно не закрыт
	closeMu sync.RWMutex
	closed  bool
}

func NewCenter(sink Sink, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) *Center {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if m == nil {
		m = metrics.NewMetrics(nil)
	}
	return &Center{
		ch:      make(chan Notification, 64),
		sink:    sink,
		ttl:     ttl,
		logger:  logger.With(zap.String("mod", "notify")),
		metrics: m,
	}
}

func (c *Center) Start() {
	c.wg.Add(1)
	go c.worker()
}

// Stop «запирает» вход в канал и ждет, пока воркер покажет остатки.
func (c *Center) Stop() {
	c.closeMu.Lock()
	c.closed = true
	close(c.ch)
	c.closeMu.Unlock()

	c.wg.Wait()
	c.logger.Info("notification center stopped")
}

// Success ставит в очередь уведомление об успехе операции.
func (c *Center) Success(title, message string) {
	c.push(LevelSuccess, title, message)
}

// Error ставит в очередь уведомление об ошибке.
// Контракт: ровно одно уведомление на один отказ, без логирования в
// долговременные стоки на этом слое.
func (c *Center) Error(title, message string) {
	c.push(LevelError, title, message)
}

func (c *Center) push(level Level, title, message string) {
	now := time.Now()
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.closeMu.RLock()
	defer c.closeMu.RUnlock()

	if c.closed {
		c.logger.Warn("notification dropped: center is stopping", zap.String("id", n.ID))
		return
	}

	select {
	case c.ch <- n:
	default:
		// Переполнение очереди: теряем уведомление, но не блокируем мутацию
		c.logger.Error("notification_overflow", zap.String("title", title))
	}
}

func (c *Center) worker() {
	defer c.wg.Done()

	for n := range c.ch {
		if time.Now().After(n.ExpiresAt) {
			c.logger.Debug("notification expired before display", zap.String("id", n.ID))
			continue
		}
		c.sink.Show(n)
		c.metrics.NotificationsTotal.WithLabelValues(string(n.Level)).Inc()
	}
}
