// Package api implements the GraphQL transport: it executes query and
// mutation text with variables against the remote endpoint and returns the
// decoded response envelope. Callers normalize and interpret the envelope;
// this layer only handles request construction, auth headers, timeouts and
// bounded retries.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const (
	headerID    = "X-MCD-ID"
	headerToken = "X-MCD-TOKEN"
)

// Credentials carry the id/token pair injected into every request.
type Credentials struct {
	ID    string
	Token string
}

// Options tune a Client beyond its endpoint and credentials.
type Options struct {
	Timeout  time.Duration // per-request deadline, 0 means no extra deadline
	Retries  int           // additional attempts after the first
	Insecure bool          // skip TLS certificate verification
}

// Client executes GraphQL operations against a single endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	creds      Credentials
	timeout    time.Duration
	retries    int
	logger     *slog.Logger
}

// NewClient builds a Client for endpoint. Insecure transports log a warning
// because they accept any server certificate.
func NewClient(endpoint string, creds Credentials, opts Options, logger *slog.Logger) *Client {
	httpClient := &http.Client{}
	if opts.Insecure {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
		logger.Warn("TLS certificate verification is disabled")
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		creds:      creds,
		timeout:    opts.Timeout,
		retries:    opts.Retries,
		logger:     logger,
	}
}

// Execute posts the operation with its variables and returns the decoded JSON
// body, which usually carries the standard {data, errors} envelope. The
// operation text is parsed before any network traffic; malformed text fails
// fast. Network failures and 5xx responses are retried up to the configured
// budget, other HTTP failures are returned immediately.
func (c *Client) Execute(ctx context.Context, operation string, variables map[string]any) (map[string]any, error) {
	if _, err := parser.ParseQuery(&ast.Source{Input: operation}); err != nil {
		return nil, fmt.Errorf("parse operation: %w", err)
	}

	payload := map[string]any{"query": operation}
	if len(variables) > 0 {
		payload["variables"] = variables
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	attempts := c.retries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set(headerID, c.creds.ID)
		req.Header.Set(headerToken, c.creds.Token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < attempts-1 {
				c.logger.Warn("request failed, retrying", "attempt", attempt+1, "error", err)
				continue
			}
			return nil, fmt.Errorf("request failed: %w", err)
		}

		result, retry, err := decodeResponse(resp)
		if err != nil {
			lastErr = err
			if retry && attempt < attempts-1 {
				c.logger.Warn("retrying on server error", "attempt", attempt+1, "error", err)
				continue
			}
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", attempts, lastErr)
}

// decodeResponse drains and decodes the HTTP response. The second return
// value reports whether the failure is worth retrying.
func decodeResponse(resp *http.Response) (map[string]any, bool, error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("server error: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("unexpected status %s: %s", resp.Status, truncate(data, 200))
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}
	return body, false, nil
}

func truncate(data []byte, limit int) string {
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
