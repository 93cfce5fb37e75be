package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"campus-console/pkg/config"
	appErrors "campus-console/pkg/errors"
)

// Observer receives timing for every upstream round trip. A status of zero
// means the request never produced a response.
type Observer interface {
	ObserveUpstreamCall(method, resource string, status int, duration time.Duration)
}

// Client is the shared transport for all entity repositories. One call maps to
// one upstream request: no retries, no caching, no request coalescing.
type Client struct {
	http     *http.Client
	baseURL  string
	logger   *zap.Logger
	observer Observer
}

// Option customises a Client.
type Option func(*Client)

// WithObserver attaches upstream-call instrumentation.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithHTTPClient overrides the underlying http.Client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New builds a Client against the configured upstream base URL.
func New(cfg config.UpstreamConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do executes one upstream request. A non-nil body is sent as JSON and a
// non-nil out receives the decoded response. 404 maps to ErrNotFound, every
// other failure to ErrUpstream.
func (c *Client) do(ctx context.Context, method, resource, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request payload")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(method, resource, 0, duration)
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "upstream api unreachable")
	}
	defer resp.Body.Close()

	c.observe(method, resource, resp.StatusCode, duration)

	if resp.StatusCode == http.StatusNotFound {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s not found", resource))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("upstream returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("upstream responded with status %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream response")
	}
	return nil
}

func (c *Client) observe(method, resource string, status int, duration time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstreamCall(method, resource, status, duration)
	}
}
