package providers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 8 * time.Second

const userAgent = "weather-lookup/1.0"

// FetchWithTimeout issues a GET request and cancels it if no response
// arrives within timeout. Transport failures are returned as
// *weather.NetworkError and deadline expiry as *weather.TimeoutError.
// The deadline also covers reading the body; callers must close it.
// No retries are performed.
func FetchWithTimeout(ctx context.Context, client *http.Client, rawURL string, header http.Header, timeout time.Duration) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	safeURL := redactURL(rawURL)

	ctx, cancel := context.WithTimeout(ctx, timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		cancel()
		return nil, &weather.NetworkError{URL: safeURL, Cause: err}
	}
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		defer cancel()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &weather.TimeoutError{URL: safeURL, After: timeout, Cause: err}
		}
		return nil, &weather.NetworkError{URL: safeURL, Cause: err}
	}

	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// readBody reads a response body, classifying a deadline hit mid-read as a
// timeout.
func readBody(resp *http.Response, safeURL string, timeout time.Duration) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err == nil {
		return body, nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, &weather.TimeoutError{URL: safeURL, After: timeout, Cause: err}
	}
	return nil, &weather.NetworkError{URL: safeURL, Cause: err}
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// redactURL strips credentials from a URL before it reaches logs or errors.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	q := u.Query()
	for _, k := range []string{"key", "appid"} {
		if q.Has(k) {
			q.Set(k, "REDACTED")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// newBreaker builds the circuit breaker guarding best-effort calls.
// Upstream application errors (e.g. an unknown location) do not count as
// failures.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, weather.ErrUpstream) || errors.Is(err, weather.ErrConfiguration)
		},
	})
}
