// Package upstream is the typed client for the remote ticashop REST API.
// Resource paths, verbs, the bearer auth header, and 401 handling follow the
// existing backend contract exactly; everything returned to callers has
// already been normalized into the canonical model.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/ricardo-aragon/ticashop-desk/internal/adapter"
	"github.com/ricardo-aragon/ticashop-desk/internal/config"
	"github.com/ricardo-aragon/ticashop-desk/internal/observability"
)

// ErrUnauthorized signals that the upstream rejected the bearer token. The
// caller must invalidate its session and send the operator back to login.
var ErrUnauthorized = errors.New("upstream rejected credentials")

// Client talks to the ticashop API. The zero token form is only good for
// Login; WithToken derives a per-session client sharing the same transport.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// New builds the base client.
func New(cfg config.UpstreamConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		logger:  logger,
		metrics: metrics,
	}
}

// WithToken returns a copy of the client that attaches the bearer token to
// every request.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// do executes one request against the upstream and returns the raw body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, string(raw))
	}
	return raw, nil
}

// logFallbacks surfaces adapter degradations instead of masking them.
func (c *Client) logFallbacks(fallbacks []adapter.Fallback) {
	for _, fb := range fallbacks {
		c.metrics.RecordFallback(fb.Entity, fb.Field)
		if c.logger != nil {
			c.logger.Warn("adapter fallback",
				zap.String("entity", fb.Entity),
				zap.String("field", fb.Field),
				zap.String("used", fb.Used),
			)
		}
	}
}
