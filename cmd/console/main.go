package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xela07ax/sensor-alert-console/internal/api"
	"github.com/xela07ax/sensor-alert-console/internal/console"
	"github.com/xela07ax/sensor-alert-console/internal/infra"
	"github.com/xela07ax/sensor-alert-console/internal/metrics"
	"github.com/xela07ax/sensor-alert-console/internal/notify"
	"github.com/xela07ax/sensor-alert-console/internal/refresh"
	"github.com/xela07ax/sensor-alert-console/internal/theme"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// 1. Конфигурация и логгер
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Метрики и опциональный отладочный листенер
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	var debugSrv *http.Server
	if cfg.Metrics.Addr != "" {
		debugSrv = metrics.NewDebugServer(cfg.Metrics.Addr, reg, logger)
	}

	// 3. Клиент бекенда: транспорт с лимитером и предохранителем
	transport := api.NewReliabilityWrapper(api.DefaultTransport(cfg.API.Timeout), cfg.API, m)
	client := api.New(cfg.API.BaseURL, transport, logger, m)

	// 4. Тема, уведомления, хаб инвалидации
	themes := theme.NewStore(cfg.Theme.Path, logger)
	themes.Load()

	sink := console.NewSink(os.Stdout, themes)
	center := notify.NewCenter(sink, 30*time.Second, logger, m)
	center.Start()

	hub := refresh.NewHub(logger, m)

	// 5. Сборка консоли
	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := console.NewApp(client, hub, center, themes, cfg, logger, m, os.Stdin, os.Stdout)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run(appCtx)
	}()

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("console stopping on signal...")
	case err := <-errCh:
		if err != nil {
			logger.Error("console exited with error", zap.Error(err))
		}
	}

	cancel()
	hub.Wait()
	center.Stop()

	if debugSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := debugSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("debug listener shutdown failed", zap.Error(err))
		}
	}
}
