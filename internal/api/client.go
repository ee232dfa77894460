// Package api provides the authenticated HTTP client, the uniform call
// result shape, and the pagination primitive shared by every resource
// client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/adminlayers/gcadm/internal/version"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 500
)

// TokenProvider supplies authorization headers and keeps the underlying
// token fresh. *auth.Manager satisfies this.
type TokenProvider interface {
	RefreshIfNeeded(ctx context.Context) bool
	Headers() (http.Header, error)
}

// Client executes authenticated requests against the resource API and
// normalizes every outcome into a CallResult. Safe for concurrent use.
type Client struct {
	baseURL    string
	tokens     TokenProvider
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a client rooted at baseURL (e.g. https://api.mypurecloud.com).
func NewClient(baseURL string, tokens TokenProvider, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log,
	}
}

// Do executes one request. Every outcome maps to a CallResult: token
// refresh failure short-circuits before any network traffic, 2xx succeeds,
// everything else fails with a normalized message.
func (c *Client) Do(ctx context.Context, method, path string, body any) CallResult {
	if !c.tokens.RefreshIfNeeded(ctx) {
		return Fail("authentication failed", http.StatusUnauthorized)
	}
	headers, err := c.tokens.Headers()
	if err != nil {
		return Fail("authentication failed", http.StatusUnauthorized)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Fail(fmt.Sprintf("encoding request body: %v", err), 0)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Fail(fmt.Sprintf("building request: %v", err), 0)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportFailure(method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return Fail(fmt.Sprintf("reading response: %v", err), resp.StatusCode)
	}

	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return OK(nil, resp.StatusCode)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return OK(respBody, resp.StatusCode)
	default:
		return Fail(errorMessage(resp.StatusCode, respBody), resp.StatusCode)
	}
}

func (c *Client) transportFailure(method, path string, err error) CallResult {
	c.log.Debug("api transport failure",
		zap.String("method", method),
		zap.String("path", path),
		zap.Error(err))

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return Fail("request timed out", 0)
	}
	return Fail("request failed: "+err.Error(), 0)
}

// errorMessage pulls a readable message out of an API error body. Bodies
// with a message or error field use that; otherwise the raw body is
// truncated and returned as-is.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	raw := string(body)
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	if raw == "" {
		return fmt.Sprintf("HTTP %d", status)
	}
	return fmt.Sprintf("HTTP %d: %s", status, raw)
}

// Convenience wrappers.

func (c *Client) Get(ctx context.Context, path string) CallResult {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) CallResult {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) CallResult {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) CallResult {
	return c.Do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) CallResult {
	return c.Do(ctx, http.MethodDelete, path, nil)
}
