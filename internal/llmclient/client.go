// Package llmclient is an HTTP client for the optional text-generation
// backend. Every failure mode (unreachable, non-200, timeout, empty
// completion) surfaces as a domain.BackendError so callers can branch to
// the deterministic fallback without inspecting transport details.
package llmclient

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/telemetry"
)

// Defaults applied by New when the config leaves them zero.
const (
	defaultTimeout        = 8 * time.Second
	defaultRequestsPerSec = 5
	defaultBurst          = 10
)

// Backend call outcomes recorded in telemetry.
const (
	outcomeSuccess = "success"
	outcomeTimeout = "timeout"
	outcomeError   = "error"
	outcomeEmpty   = "empty"
)

// HistoryEntry is one prior exchange passed for conversational context.
type HistoryEntry struct {
	Student   string `json:"student"`
	Counselor string `json:"counselor"`
}

// GenerateRequest is the context handed to the backend for one reply.
type GenerateRequest struct {
	Category  string         `json:"category"` // response category guideline set
	StudentID string         `json:"student_id"`
	Message   string         `json:"message"`
	Sentiment string         `json:"sentiment"` // formatted analysis block
	History   []HistoryEntry `json:"history"`
}

// Config holds client configuration.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec int
	Burst          int
}

// Client calls the text-generation backend with a bounded timeout and
// request pacing. A Client with an empty BaseURL is valid: it reports
// Enabled() == false and every Generate returns a BackendError, which
// callers already treat as "use the fallback".
type Client struct {
	baseURL   string
	timeout   time.Duration
	limiter   *rate.Limiter
	telemetry *telemetry.Provider
}

// New creates a backend client. telemetry may be nil.
func New(cfg Config, tp *telemetry.Provider) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = defaultRequestsPerSec
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		timeout:   cfg.Timeout,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		telemetry: tp,
	}
}

// Enabled reports whether a backend URL is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Generate requests one completion. Single attempt, no retry: the
// deterministic fallback is cheaper and safer than a second network
// round trip on this latency path.
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	if !c.Enabled() {
		return "", domain.NewBackendError("generate", errors.New("backend not configured"))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", domain.NewBackendError("generate", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := doGenerate(ctx, c.baseURL, req)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		c.recordCall(elapsed, callOutcome(ctx, err))
		return "", domain.NewBackendError("generate", err)
	case text == "":
		c.recordCall(elapsed, outcomeEmpty)
		return "", domain.NewBackendError("generate", errors.New("backend returned empty completion"))
	default:
		c.recordCall(elapsed, outcomeSuccess)
		return text, nil
	}
}

// Health checks whether the backend is reachable and healthy.
func (c *Client) Health(ctx context.Context) error {
	if !c.Enabled() {
		return domain.NewBackendError("health", errors.New("backend not configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := doHealth(ctx, c.baseURL); err != nil {
		return domain.NewBackendError("health", err)
	}
	return nil
}

func (c *Client) recordCall(elapsed time.Duration, outcome string) {
	if c.telemetry != nil {
		c.telemetry.RecordBackendCall(elapsed, outcome)
	}
}

func callOutcome(ctx context.Context, err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return outcomeTimeout
	}
	return outcomeError
}
