package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xela07ax/sensor-alert-console/internal/domain"
	"github.com/xela07ax/sensor-alert-console/internal/infra"
	"github.com/xela07ax/sensor-alert-console/internal/metrics"

	"go.uber.org/zap"
)

// Doer — минимальный контракт транспорта (http.Client или обертка над ним).
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BuildURL собирает адрес запроса из базы и endpoint.
// Гарантирует ровно один разделитель между базой и путем независимо от того,
// передал ли вызывающий ведущий слеш. Пустая база дает относительный путь.
func BuildURL(base, endpoint string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// Client — типизированный клиент REST-контракта бекенда алертинга.
type Client struct {
	baseURL string
	doer    Doer
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(baseURL string, doer Doer, logger *zap.Logger, m *metrics.Metrics) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 10 * time.Second}
	}
	if m == nil {
		m = metrics.NewMetrics(nil)
	}
	return &Client{
		baseURL: baseURL,
		doer:    doer,
		logger:  logger.Named("api-client"),
		metrics: m,
	}
}

// call выполняет один запрос и разбирает конверт ответа.
// Ошибок два сорта: транспортная (сеть, не-JSON) и прикладная (*APIError).
// Ни ретраев, ни очередей: неудачный запрос завершается сразу.
func (c *Client) call(ctx context.Context, method, endpoint string, body, out any) error {
	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		rd = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, BuildURL(c.baseURL, endpoint), rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	c.metrics.RequestsTotal.WithLabelValues(method, endpoint).Inc()

	resp, err := c.doer.Do(req)
	if err != nil {
		c.metrics.ErrorsTotal.WithLabelValues("transport").Inc()
		c.metrics.RequestDuration.WithLabelValues(method, endpoint, "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.RequestDuration.
		WithLabelValues(method, endpoint, strconv.Itoa(resp.StatusCode)).
		Observe(time.Since(start).Seconds())

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.metrics.ErrorsTotal.WithLabelValues("transport").Inc()
		return fmt.Errorf("malformed backend response: %w", err)
	}

	if !env.Success {
		c.metrics.ErrorsTotal.WithLabelValues("backend").Inc()
		c.logger.Debug("backend rejected request",
			zap.String("endpoint", endpoint),
			zap.String("error", env.Error),
		)
		return &APIError{Message: env.Error}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("malformed backend payload: %w", err)
		}
	}
	return nil
}

// ListRules возвращает полную коллекцию правил.
func (c *Client) ListRules(ctx context.Context) ([]domain.AlertRule, error) {
	var rules []domain.AlertRule
	if err := c.call(ctx, http.MethodGet, infra.PathAlertRules, nil, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// CreateRule создает новое правило из черновика формы.
func (c *Client) CreateRule(ctx context.Context, d domain.RuleDraft) error {
	return c.call(ctx, http.MethodPost, infra.PathAlertRules, d.Payload(), nil)
}

// UpdateRule перезаписывает существующее правило.
func (c *Client) UpdateRule(ctx context.Context, id int64, d domain.RuleDraft) error {
	return c.call(ctx, http.MethodPut, infra.RulePath(id), d.Payload(), nil)
}

// ToggleRule выставляет is_active через выделенный endpoint.
// Значение передается как 0/1 — ровно так его ждет бекенд.
func (c *Client) ToggleRule(ctx context.Context, id int64, isActive int) error {
	body := map[string]int{"is_active": isActive}
	return c.call(ctx, http.MethodPatch, infra.RuleTogglePath(id), body, nil)
}

// DeleteRule удаляет правило. Подтверждение — забота вызывающего.
func (c *Client) DeleteRule(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, infra.RulePath(id), nil, nil)
}

// History возвращает последние limit записей об отправках.
func (c *Client) History(ctx context.Context, limit int) ([]domain.AlertHistoryItem, error) {
	var items []domain.AlertHistoryItem
	if err := c.call(ctx, http.MethodGet, infra.HistoryPath(limit), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Statistics возвращает агрегированный снимок для дашборда.
func (c *Client) Statistics(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics
	if err := c.call(ctx, http.MethodGet, infra.PathAlertStatistics, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
