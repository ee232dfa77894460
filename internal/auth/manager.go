// Package auth manages the OAuth2 client-credentials token lifecycle.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/adminlayers/gcadm/internal/config"
	"github.com/adminlayers/gcadm/internal/output"
)

const tokenTimeout = 30 * time.Second

// Manager obtains and refreshes access tokens for a single client
// credential set. Safe for concurrent use; concurrent refreshes collapse
// into one network call.
type Manager struct {
	cfg        *config.Config
	httpClient *http.Client
	log        *zap.Logger

	mu    sync.Mutex
	token *Token

	now      func() time.Time // test hooks
	loginURL string
}

// NewManager creates a token manager for the given configuration.
func NewManager(cfg *config.Config, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: tokenTimeout},
		log:        log,
		now:        time.Now,
	}
}

// Authenticate requests a fresh token. It returns ok plus a human-readable
// status message; credential and transport failures are reported in the
// message, not as a panic or process exit.
func (m *Manager) Authenticate(ctx context.Context) (bool, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticateLocked(ctx)
}

func (m *Manager) authenticateLocked(ctx context.Context) (bool, string) {
	form := url.Values{"grant_type": {"client_credentials"}}
	base := m.loginURL
	if base == "" {
		base = m.cfg.LoginURL()
	}
	endpoint := base + "/oauth/token"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Sprintf("building token request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(m.cfg.ClientID, m.cfg.ClientSecret)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.log.Debug("token request failed", zap.Error(err))
		return false, fmt.Sprintf("token request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, fmt.Sprintf("reading token response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return false, tokenErrorMessage(resp.StatusCode, body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.AccessToken == "" {
		return false, "token response missing access_token"
	}
	if payload.TokenType == "" {
		payload.TokenType = "Bearer"
	}
	if payload.ExpiresIn <= 0 {
		payload.ExpiresIn = 86400
	}

	m.token = &Token{
		AccessToken: payload.AccessToken,
		TokenType:   payload.TokenType,
		ExpiresIn:   payload.ExpiresIn,
		IssuedAt:    m.now(),
	}
	m.log.Debug("token acquired",
		zap.Int("expires_in", payload.ExpiresIn),
		zap.String("region", m.cfg.Region))
	return true, "authenticated"
}

// tokenErrorMessage extracts the server's explanation from an OAuth error
// body, preferring error_description over the bare error code.
func tokenErrorMessage(status int, body []byte) string {
	var payload struct {
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.ErrorDescription != "" {
			return payload.ErrorDescription
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("token endpoint returned HTTP %d", status)
}

// RefreshIfNeeded ensures a usable token exists, authenticating only when
// the current one is missing or within the expiry buffer.
func (m *Manager) RefreshIfNeeded(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != nil && !m.token.Expired(m.now()) {
		return true
	}
	ok, msg := m.authenticateLocked(ctx)
	if !ok {
		m.log.Debug("token refresh failed", zap.String("reason", msg))
	}
	return ok
}

// IsAuthenticated reports whether a non-expired token is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != nil && !m.token.Expired(m.now())
}

// Headers returns the authorization headers for an API request. Fails when
// no usable token is held.
func (m *Manager) Headers() (http.Header, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil || m.token.Expired(m.now()) {
		return nil, output.ErrAuth("not authenticated")
	}
	h := http.Header{}
	h.Set("Authorization", m.token.TokenType+" "+m.token.AccessToken)
	h.Set("Content-Type", "application/json")
	return h, nil
}

// ExpiresAt returns the current token's expiry time, if one is held.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == nil {
		return time.Time{}, false
	}
	return m.token.ExpiresAt(), true
}
