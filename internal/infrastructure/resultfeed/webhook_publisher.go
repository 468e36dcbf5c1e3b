package resultfeed

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
)

var errWebhookTransient = errors.New("result webhook transient failure")

type WebhookConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
	Retries int
	Circuit resilience.BreakerConfig
}

// WebhookPublisher posts every finished match to an external URL.
type WebhookPublisher struct {
	client  *fasthttp.Client
	url     string
	token   string
	timeout time.Duration
	retries int
	breaker *resilience.Breaker
	logger  *logging.Logger
	backoff func(attempt int) time.Duration
}

func NewWebhookPublisher(cfg WebhookConfig, logger *logging.Logger) (*WebhookPublisher, error) {
	target, err := validateHTTPURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid RESULT_WEBHOOK_URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &WebhookPublisher{
		client: &fasthttp.Client{
			Name:                "courtside-result-webhook",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		url:     target,
		token:   strings.TrimSpace(cfg.Token),
		timeout: timeout,
		retries: cfg.Retries,
		breaker: resilience.NewBreaker(cfg.Circuit),
		logger:  logger,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * 500 * time.Millisecond
		},
	}, nil
}

func (p *WebhookPublisher) Publish(ctx context.Context, record session.HistoryRecord) error {
	body, err := sonic.Marshal(payloadFromRecord(record))
	if err != nil {
		return fmt.Errorf("marshal result webhook payload: %w", err)
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", p.url),
			attribute.String("webhook.record_id", record.ID),
			attribute.String("webhook.circuit_state", string(p.breaker.State())),
		)
	}

	err = p.breaker.Do(ctx, func(ctx context.Context) error {
		return p.send(ctx, body)
	}, isWebhookCircuitFailure)
	if err != nil {
		return fmt.Errorf("publish result %s: %w", record.ID, err)
	}

	p.logger.InfoContext(ctx, "result webhook delivered", "record_id", record.ID, "court", record.Court)
	return nil
}

func (p *WebhookPublisher) send(ctx context.Context, body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		lastErr = p.post(ctx, body)
		if lastErr == nil || !errors.Is(lastErr, errWebhookTransient) || attempt == p.retries {
			return lastErr
		}

		timer := time.NewTimer(p.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

func (p *WebhookPublisher) post(ctx context.Context, body []byte) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.SetBodyRaw(body)

	deadline := time.Now().Add(p.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := p.client.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("%w: send request: %v", errWebhookTransient, err)
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		return nil
	case isRetryableStatus(status):
		return fmt.Errorf("%w: status=%d body=%s", errWebhookTransient, status, abbreviate(resp.Body()))
	default:
		return fmt.Errorf("result webhook rejected: status=%d body=%s", status, abbreviate(resp.Body()))
	}
}

// isWebhookCircuitFailure keeps receiver rejections (4xx) from opening
// the circuit.
func isWebhookCircuitFailure(err error) bool {
	return errors.Is(err, errWebhookTransient) || errors.Is(err, context.DeadlineExceeded)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", fmt.Errorf("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", candidate, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", fmt.Errorf("%q has empty host", candidate)
	}
	return candidate, nil
}

func abbreviate(raw []byte) string {
	const max = 512
	text := strings.TrimSpace(string(raw))
	if len(text) <= max {
		return text
	}
	return text[:max] + "...(truncated)"
}
