package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	AcceptFeed = "application/rss+xml, application/atom+xml, application/feed+json, application/xml, text/xml;q=0.9, */*;q=0.8"
	AcceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Result is the outcome of a single bounded fetch. Network errors,
// timeouts, and non-2xx statuses are captured here instead of being
// returned as Go errors, so callers can treat any upstream failure as
// "this source contributed nothing" without unwinding.
type Result struct {
	OK         bool
	StatusCode int
	Body       []byte
	Elapsed    time.Duration
	Err        string
}

type Client struct {
	httpClient *http.Client
	userAgent  string
}

func NewClient(userAgent string) *Client {
	return &Client{
		// No client-level timeout: deadlines come from the per-request
		// context so each fetch can carry its own budget.
		httpClient: &http.Client{},
		userAgent:  userAgent,
	}
}

// Run fetches url with the given deadline. Cancellation propagates to the
// transport, so expired fetches abort their connections instead of
// lingering until the body is read.
func (c *Client) Run(ctx context.Context, url string, timeout time.Duration, accept string) Result {
	started := time.Now()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Err: fmt.Sprintf("failed to create request: %v", err), Elapsed: time.Since(started)}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, context.DeadlineExceeded) || timeoutCtx.Err() != nil {
			msg = "timeout"
		}
		return Result{Err: msg, Elapsed: time.Since(started)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{
			StatusCode: resp.StatusCode,
			Err:        fmt.Sprintf("HTTP %d", resp.StatusCode),
			Elapsed:    time.Since(started),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{
			StatusCode: resp.StatusCode,
			Err:        fmt.Sprintf("failed to read response body: %v", err),
			Elapsed:    time.Since(started),
		}
	}

	return Result{
		OK:         true,
		StatusCode: resp.StatusCode,
		Body:       body,
		Elapsed:    time.Since(started),
	}
}
