// Package harvest provides a client for the Harvest v2 REST API.
// It covers the resources the MCP tools and CLI commands need:
// company, clients, contacts, projects, tasks, assignments, time
// entries, users, expenses, invoices, estimates, and reports.
package harvest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// DefaultBaseURL is the Harvest v2 API root.
const DefaultBaseURL = "https://api.harvestapp.com/v2"

// maxRetryAfter caps how long a 429 Retry-After hint is honored.
const maxRetryAfter = 15 * time.Second

// HTTPDoer defines the HTTP operations required by Client.
// This allows injection of test doubles for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an authenticated Harvest v2 API client.
// All methods take a context and perform exactly one logical API call.
type Client struct {
	baseURL    string
	token      string
	accountID  string
	userAgent  string
	httpClient HTTPDoer
	logger     *log.Logger
	sleep      func(context.Context, time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (used by tests and proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(d HTTPDoer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithLogger enables request logging. The logger must write to stderr
// when the client is used inside the stdio MCP server.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a Harvest client with the given credentials.
func New(token, accountID string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.New("harvest: access token is required")
	}
	if accountID == "" {
		return nil, errors.New("harvest: account ID is required")
	}

	client := &Client{
		baseURL:   DefaultBaseURL,
		token:     token,
		accountID: accountID,
		userAgent: "harvest-mcp (github.com/barnloft/harvest-mcp)",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// APIError is a non-2xx response from the Harvest API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("Harvest API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsAuth reports whether err is a 401 or 403 from the API.
func IsAuth(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// harvestErrorBody matches the error shapes Harvest returns:
// {"message": "..."} on resource errors and
// {"error": "...", "error_description": "..."} on auth errors.
type harvestErrorBody struct {
	Message          string `json:"message"`
	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// get performs a GET request with optional query parameters.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post performs a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// patch performs a PATCH request with an optional JSON body.
func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// del performs a DELETE request. Harvest returns an empty 200 body.
func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do performs one API request, retrying a single time when the API
// answers 429 with a Retry-After hint.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		payload = encoded
	}

	status, respBody, err := c.roundTrip(ctx, method, path, query, payload)
	if err != nil {
		return err
	}

	if status == http.StatusTooManyRequests {
		delay := retryAfter(respBody.header)
		if c.logger != nil {
			c.logger.Warn("rate limited, retrying", "path", path, "delay", delay)
		}
		if err := c.sleep(ctx, delay); err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		status, respBody, err = c.roundTrip(ctx, method, path, query, payload)
		if err != nil {
			return err
		}
	}

	if status >= 400 {
		return decodeAPIError(status, respBody.data)
	}

	if out != nil && len(respBody.data) > 0 {
		if err := json.Unmarshal(respBody.data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// response carries the pieces of an HTTP response do needs after the
// body has been drained and closed.
type response struct {
	data   []byte
	header http.Header
}

// roundTrip performs one HTTP exchange and drains the body.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte) (int, response, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return 0, response{}, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Harvest-Account-Id", c.accountID)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.logger != nil {
		c.logger.Debug("harvest request", "method", method, "path", path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, response{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, response{}, fmt.Errorf("reading response body: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug("harvest response", "method", method, "path", path, "status", resp.StatusCode)
	}

	return resp.StatusCode, response{data: data, header: resp.Header}, nil
}

// decodeAPIError turns a non-2xx body into an APIError.
func decodeAPIError(status int, body []byte) error {
	var parsed harvestErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			return &APIError{StatusCode: status, Message: parsed.Message}
		case parsed.ErrorDescription != "":
			return &APIError{StatusCode: status, Message: parsed.ErrorDescription}
		case parsed.ErrorCode != "":
			return &APIError{StatusCode: status, Message: parsed.ErrorCode}
		}
	}

	// Truncate raw bodies so huge HTML error pages don't flood output.
	// The cut lands on a rune boundary so multi-byte text stays valid.
	raw := strings.TrimSpace(string(body))
	if len(raw) > 500 {
		cut := 500
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut]
	}
	if raw == "" {
		raw = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: raw}
}

// sleepContext waits for d, returning early with the context error
// when ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryAfter parses the Retry-After header, clamped to maxRetryAfter.
func retryAfter(header http.Header) time.Duration {
	value := header.Get("Retry-After")
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return time.Second
	}
	delay := time.Duration(seconds) * time.Second
	if delay > maxRetryAfter {
		return maxRetryAfter
	}
	return delay
}
