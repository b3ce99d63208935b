package console

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xela07ax/sensor-alert-console/internal/domain"
	"github.com/xela07ax/sensor-alert-console/internal/infra"

	"github.com/avast/retry-go/v5"
	"go.uber.org/zap"
)

// StatsProber Описываем, что прогреву нужно от клиента API
type StatsProber interface {
	Statistics(ctx context.Context) (*domain.Statistics, error)
}

// WaitBackend проверяет доступность бекенда перед стартом консоли.
// Это единственное место с ретраями: стартовый прогрев — не пользовательская
// операция, контракт "без повторов" на него не распространяется. Весь прогрев
// ограничен дедлайном (по умолчанию 3 секунды, как жил стартовый спиннер).
func WaitBackend(ctx context.Context, probe StatsProber, cfg infra.WarmupConfig, out io.Writer, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Deadline)
	defer cancel()

	done := make(chan struct{})
	go spin(out, done)
	defer close(done)

	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(cfg.Attempts),
		retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
			return cfg.Delay
		}),
	)

	err := r.Do(func() error {
		_, probeErr := probe.Statistics(ctx)
		return probeErr
	})
	if err != nil {
		logger.Warn("backend not reachable during warmup", zap.Error(err))
		return err
	}

	logger.Info("backend reachable")
	return nil
}

// spin крутит декоративный спиннер, пока идет прогрев.
// Чистая косметика: ни от каких данных не зависит.
func spin(out io.Writer, done <-chan struct{}) {
	frames := []string{"|", "/", "-", "\\"}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-done:
			fmt.Fprint(out, "\r \r")
			return
		case <-ticker.C:
			fmt.Fprintf(out, "\r%s conectando...", frames[i%len(frames)])
			i++
		}
	}
}
