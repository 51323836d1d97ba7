// Package session handles authentication against the external identity
// provider. The provider is a black box reachable over a documented token
// endpoint; this package exchanges credentials for tokens, caches them,
// and refreshes them when they approach expiry.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotAuthenticated is returned when a token is requested before any
// login, or after the session has expired beyond recovery. This is an
// explicit error, never a silent blank state.
var ErrNotAuthenticated = errors.New("not authenticated")

// expirySlack is how long before the recorded expiry a cached access token
// stops being handed out, to avoid presenting a token that dies in flight.
const expirySlack = 30 * time.Second

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenSource logs in against the identity provider's token endpoint and
// serves cached access tokens, refreshing them with the refresh token when
// they near expiry. It is safe for concurrent use.
type TokenSource struct {
	endpoint string
	clientID string
	http     *http.Client
	logger   *zap.Logger

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiry       time.Time
}

// NewTokenSource creates a token source for the given token endpoint and
// OAuth client id. A nil httpClient falls back to a client with a 15
// second timeout, and a nil logger to zap.NewNop().
func NewTokenSource(endpoint, clientID string, httpClient *http.Client, logger *zap.Logger) *TokenSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenSource{
		endpoint: endpoint,
		clientID: clientID,
		http:     httpClient,
		logger:   logger,
	}
}

// Login exchanges user credentials for a token pair via the password grant.
func (s *TokenSource) Login(ctx context.Context, username, password string) error {
	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {s.clientID},
		"username":   {username},
		"password":   {password},
	}
	tok, err := s.fetch(ctx, form)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	s.mu.Lock()
	s.store(tok)
	s.mu.Unlock()

	s.logger.Info("Logged in", zap.String("username", username))
	return nil
}

// Resume seeds the source with a previously persisted refresh token, so a
// new process can continue an earlier session without credentials.
func (s *TokenSource) Resume(refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshToken = refreshToken
	s.accessToken = ""
	s.expiry = time.Time{}
}

// RefreshToken returns the current refresh token for persistence, or the
// empty string when no session exists.
func (s *TokenSource) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

// AccessToken returns a valid access token, refreshing the cached one when
// it nears expiry. Without a prior Login or Resume it returns
// ErrNotAuthenticated.
func (s *TokenSource) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && time.Now().Add(expirySlack).Before(s.expiry) {
		return s.accessToken, nil
	}
	if s.refreshToken == "" {
		return "", ErrNotAuthenticated
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {s.clientID},
		"refresh_token": {s.refreshToken},
	}
	tok, err := s.fetch(ctx, form)
	if err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}
	s.store(tok)
	s.logger.Debug("Refreshed access token", zap.Time("expiry", s.expiry))
	return s.accessToken, nil
}

// Claims parses the cached access token's claims. The signature is not
// verified; validation is the backend's job, the client only reads
// identity hints for display.
func (s *TokenSource) Claims() (*Claims, error) {
	s.mu.Lock()
	token := s.accessToken
	s.mu.Unlock()

	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return ParseClaims(token)
}

// store records a fetched token pair. Callers hold the mutex. A grant that
// returns no new refresh token keeps the old one.
func (s *TokenSource) store(tok *tokenResponse) {
	s.accessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		s.refreshToken = tok.RefreshToken
	}
	s.expiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
}

// fetch POSTs a grant form to the token endpoint and decodes the response.
func (s *TokenSource) fetch(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned an empty access token")
	}
	return &tok, nil
}
