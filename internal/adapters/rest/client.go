package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"route-resilience-service/internal/metrics"
)

// StatusError reports a non-2xx response from an external provider.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Client is a shared outbound HTTP core for provider adapters: fixed
// headers, bounded exponential-backoff retries for transient failures, and
// per-provider metrics. Safe for concurrent use.
type Client struct {
	name    string
	session *http.Client
	headers map[string]string
}

func NewClient(name string, timeout time.Duration, headers map[string]string) *Client {
	return &Client{
		name:    name,
		session: &http.Client{Timeout: timeout},
		headers: headers,
	}
}

// NewRequest builds a request with the client's fixed headers applied.
func (c *Client) NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// DoWithRetry retries transient failures (network errors, 429, 5xx) with
// exponential backoff while respecting context cancellation. Requests are
// rebuilt per attempt because bodies are single-use.
func (c *Client) DoWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	metrics.ProviderRequestsTotal.WithLabelValues(c.name).Inc()
	start := time.Now()
	defer func() {
		metrics.ProviderDurationMs.WithLabelValues(c.name).Observe(float64(time.Since(start).Milliseconds()))
	}()

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var se *StatusError
		if errors.As(err, &se) {
			switch se.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			metrics.ProviderFailuresTotal.WithLabelValues(c.name).Inc()
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	metrics.ProviderFailuresTotal.WithLabelValues(c.name).Inc()
	return nil, lastErr
}
