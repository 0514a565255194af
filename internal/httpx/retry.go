// Package httpx provides the retrying HTTP client used for idempotent GET
// requests against upstream sources, and the circuit breaker guarding them.
package httpx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"
)

// Retryable status codes. Anything else fails immediately.
var retryableStatus = map[int]bool{
	http.StatusRequestTimeout:      true, // 408
	http.StatusTooManyRequests:     true, // 429
	http.StatusInternalServerError: true, // 500
	http.StatusBadGateway:          true, // 502
	http.StatusServiceUnavailable:  true, // 503
	http.StatusGatewayTimeout:      true, // 504
}

// RetryConfig tunes the backoff schedule.
type RetryConfig struct {
	MaxAttempts    int
	InitialDelayMs int
	MaxDelayMs     int
	Multiplier     float64
}

// SetDefaults sets default values for retry configuration
func (rc *RetryConfig) SetDefaults() {
	if rc.MaxAttempts == 0 {
		rc.MaxAttempts = 4
	}
	if rc.InitialDelayMs == 0 {
		rc.InitialDelayMs = 500
	}
	if rc.MaxDelayMs == 0 {
		rc.MaxDelayMs = 10000
	}
	if rc.Multiplier == 0 {
		rc.Multiplier = 2.0
	}
}

// RetryingClient wraps an http.Client with bounded exponential-backoff retry
// for GET requests. Exhaustion invokes OnExhausted, the global network-error
// signal surfaced as a UI banner by the client application.
type RetryingClient struct {
	httpClient     *http.Client
	config         RetryConfig
	circuitBreaker *CircuitBreaker

	// OnExhausted is called once per request whose retries were used up.
	OnExhausted func(err error)
}

// NewRetryingClient creates a retrying client around the given http.Client
func NewRetryingClient(httpClient *http.Client, config RetryConfig) *RetryingClient {
	config.SetDefaults()
	return &RetryingClient{
		httpClient:     httpClient,
		config:         config,
		circuitBreaker: NewCircuitBreaker(),
	}
}

// Get performs a GET with retries. Headers are applied to every attempt.
func (c *RetryingClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	if !c.circuitBreaker.CanAttempt() {
		err := fmt.Errorf("circuit breaker is open for upstream requests")
		c.exhausted(err)
		return nil, err
	}

	var lastErr error

	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		resp, err := c.do(ctx, url, headers)
		if err == nil && resp.StatusCode < 300 {
			c.circuitBreaker.RecordSuccess()
			return resp, nil
		}

		var statusCode int
		if err != nil {
			lastErr = err
		} else {
			statusCode = resp.StatusCode
			lastErr = fmt.Errorf("upstream returned status %d", statusCode)
		}

		// Non-retryable status: surface immediately.
		if err == nil && !retryableStatus[statusCode] {
			c.circuitBreaker.RecordFailure()
			return resp, nil
		}

		if attempt == c.config.MaxAttempts {
			if resp != nil {
				drain(resp)
			}
			break
		}

		delay := c.delayFor(attempt, resp)
		if resp != nil {
			drain(resp)
		}

		slog.Warn("Upstream request failed, retrying",
			"url", url,
			"attempt", attempt,
			"max_attempts", c.config.MaxAttempts,
			"next_retry_ms", delay.Milliseconds(),
			"error", lastErr.Error(),
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			c.circuitBreaker.RecordFailure()
			return nil, ctx.Err()
		}
	}

	c.circuitBreaker.RecordFailure()
	err := fmt.Errorf("upstream request failed after %d attempts: %w", c.config.MaxAttempts, lastErr)
	c.exhausted(err)
	return nil, err
}

// do performs a single attempt
func (c *RetryingClient) do(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return c.httpClient.Do(req)
}

// delayFor computes the wait before the next attempt. A Retry-After header
// (delta-seconds or HTTP-date) overrides the backoff schedule; otherwise the
// delay is exponential with full jitter.
func (c *RetryingClient) delayFor(attempt int, resp *http.Response) time.Duration {
	if resp != nil {
		if after, ok := parseRetryAfter(resp.Header.Get("Retry-After")); ok {
			return after
		}
	}

	capMs := float64(c.config.InitialDelayMs) * math.Pow(c.config.Multiplier, float64(attempt-1))
	if capMs > float64(c.config.MaxDelayMs) {
		capMs = float64(c.config.MaxDelayMs)
	}

	// Full jitter: uniform in [0, cap].
	return time.Duration(rand.Float64()*capMs) * time.Millisecond
}

// parseRetryAfter handles both forms of the header: "120" and an HTTP-date.
func parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}

	var seconds int
	if _, err := fmt.Sscanf(value, "%d", &seconds); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second, true
	}

	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d, true
		}
		return 0, true
	}

	return 0, false
}

func (c *RetryingClient) exhausted(err error) {
	slog.Error("Upstream request retries exhausted", "error", err.Error())
	if c.OnExhausted != nil {
		c.OnExhausted(err)
	}
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
