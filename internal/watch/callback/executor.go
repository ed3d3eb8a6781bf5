// Package callback delivers rule results to registered HTTP endpoints.
package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/google/uuid"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrRejected is returned when the endpoint answers with a client error.
var ErrRejected = errors.New("callback rejected by endpoint")

type payload struct {
	CallbackID uuid.UUID       `json:"callback_id"`
	RuleID     uuid.UUID       `json:"rule_id"`
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// Executor POSTs callback results as JSON. Any 2xx answer is a success, 5xx answers
// and transport errors are retried, anything else fails immediately.
type Executor struct {
	client     HTTPClient
	limiter    ratelimit.Limiter
	maxRetries uint64
	logger     *zap.Logger
	newBackOff func() backoff.BackOff
}

// NewExecutor creates an Executor sending at most rps requests per second. A
// non-positive rps disables the limit.
func NewExecutor(client HTTPClient, rps int, maxRetries uint64, logger *zap.Logger) *Executor {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &Executor{
		client:     client,
		limiter:    limiter,
		maxRetries: maxRetries,
		logger:     logger.Named("callback_executor"),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		},
	}
}

// NewHTTPClient returns the client used for deliveries.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (e *Executor) Execute(ctx context.Context, id uuid.UUID, url string, result model.CallbackResult) error {
	body, err := json.Marshal(payload{
		CallbackID: id,
		RuleID:     result.RuleID,
		Status:     result.Status,
		Data:       result.Data,
	})
	if err != nil {
		return fmt.Errorf("encode callback %s: %w", id, err)
	}

	logger := e.logger.With(
		zap.Stringer("callback_id", id),
		zap.Stringer("rule_id", result.RuleID),
		zap.String("status", result.Status),
	)

	send := func() error {
		e.limiter.Take()
		return e.send(ctx, url, body)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(e.newBackOff(), e.maxRetries), ctx)
	notify := func(err error, next time.Duration) {
		logger.Warn("callback delivery failed, retrying", zap.Error(err), zap.Duration("next", next))
	}

	if err = backoff.RetryNotify(send, policy, notify); err != nil {
		return fmt.Errorf("deliver callback %s: %w", id, err)
	}
	logger.Debug("callback delivered")
	return nil
}

func (e *Executor) send(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return backoff.Permanent(ctxErr)
		}
		return fmt.Errorf("post callback: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500:
		return fmt.Errorf("endpoint answered %s", resp.Status)
	default:
		return backoff.Permanent(fmt.Errorf("%w: %s", ErrRejected, resp.Status))
	}
}
