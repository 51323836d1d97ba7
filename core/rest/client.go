// Package rest implements the authenticated JSON client for the Quote Me
// backend API. It owns request construction, bearer-token injection, and
// status-code classification; list responses decode into listview records
// normalized against the matching view. The client performs no retries;
// retry policy belongs to the caller.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quoteme/go-quoteme/core/listview"
)

// TokenProvider supplies the bearer token attached to every request.
// core/session.TokenSource is the production implementation.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// Client issues authenticated REST calls against the backend API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	logger  *zap.Logger
}

// NewClient creates a new API client. A nil httpClient falls back to a
// client with a 15 second timeout, and a nil logger to zap.NewNop().
func NewClient(baseURL string, tokens TokenProvider, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		logger:  logger,
	}
}

// do executes a single request. A non-nil body is sent as JSON; a non-nil
// out receives the decoded JSON response. Responses with status >= 400 are
// classified into the package error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.Debug("Executing API request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		err := classifyStatus(resp)
		c.logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %s %s: %w", method, path, err)
	}
	return nil
}

// normalizeAll maps raw decoded records through listview.Normalize for the
// given view.
func normalizeAll(view *listview.View, records []listview.Record) []listview.Record {
	out := make([]listview.Record, 0, len(records))
	for _, rec := range records {
		out = append(out, listview.Normalize(view, rec))
	}
	return out
}
