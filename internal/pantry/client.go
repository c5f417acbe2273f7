// Package pantry talks to the Pantry basket API.
//
// Every operation maps onto a single request against
// {baseURL}/{pantryId}/basket/{basketName}, except Merge which reads the
// basket first and then replaces it with the merged contents.
package pantry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pantrymcp/pantry-mcp/internal/core"
	"github.com/pantrymcp/pantry-mcp/internal/errors"
)

// DefaultUserAgent is sent when WithUserAgent is not used.
const DefaultUserAgent = "pantry-mcp"

// Contents is the key-value document stored in a basket.
type Contents = map[string]any

// Client performs basket operations against one Pantry API root.
type Client struct {
	http      *http.Client
	logger    *slog.Logger
	baseURL   string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client rooted at baseURL, e.g. core.DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{},
		logger:    slog.New(slog.DiscardHandler),
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the basket contents as received.
func (c *Client) Get(ctx context.Context, t core.Target) (json.RawMessage, error) {
	data, err := c.do(ctx, http.MethodGet, t, nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, errors.InvalidResponse(fmt.Errorf("basket %q: body is not JSON", t.BasketName))
	}
	return compact(data), nil
}

// Replace overwrites the basket with contents. The result is Pantry's
// acknowledgement, not the stored document.
func (c *Client) Replace(ctx context.Context, t core.Target, contents Contents) (json.RawMessage, error) {
	if contents == nil {
		contents = Contents{}
	}
	data, err := c.do(ctx, http.MethodPost, t, contents)
	if err != nil {
		return nil, err
	}
	return payload(data)
}

// Merge shallow-merges update into the current basket and writes the result
// back. A missing basket counts as empty. Any other read failure aborts
// before the write. The read and write are not atomic: a concurrent writer
// between them is overwritten.
func (c *Client) Merge(ctx context.Context, t core.Target, update Contents) (json.RawMessage, error) {
	res, err := c.lookup(ctx, t)
	if err != nil {
		return nil, err
	}

	current := res.contents
	if res.state == basketMissing {
		c.logger.DebugContext(ctx, "basket missing, merging into empty contents", "basket", t.BasketName)
		current = Contents{}
	}

	return c.Replace(ctx, t, ShallowMerge(current, update))
}

// Delete removes the basket. Errors for missing baskets are surfaced as reported.
func (c *Client) Delete(ctx context.Context, t core.Target) (json.RawMessage, error) {
	data, err := c.do(ctx, http.MethodDelete, t, nil)
	if err != nil {
		return nil, err
	}
	return payload(data)
}

// ShallowMerge returns a new mapping holding current's keys overwritten by
// update's. Nested objects are replaced, never merged. Neither input is modified.
func ShallowMerge(current, update Contents) Contents {
	merged := make(Contents, len(current)+len(update))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range update {
		merged[k] = v
	}
	return merged
}

type lookupState int

const (
	basketFound lookupState = iota
	basketMissing
)

// lookupResult is the outcome of the pre-merge read. Failures other than a
// missing basket are returned as errors instead.
type lookupResult struct {
	contents Contents
	state    lookupState
}

func (c *Client) lookup(ctx context.Context, t core.Target) (lookupResult, error) {
	data, err := c.do(ctx, http.MethodGet, t, nil)
	if errors.Is(err, errors.CodeBasketNotFound) {
		return lookupResult{state: basketMissing}, nil
	}
	if err != nil {
		return lookupResult{}, err
	}

	var contents Contents
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&contents); err != nil {
		return lookupResult{}, errors.InvalidResponse(fmt.Errorf("basket %q: %w", t.BasketName, err))
	}
	if contents == nil {
		return lookupResult{}, errors.InvalidResponse(fmt.Errorf("basket %q: body is not a JSON object", t.BasketName))
	}

	return lookupResult{contents: contents, state: basketFound}, nil
}

// basketURL builds the endpoint for t. Identifiers are path-escaped.
func (c *Client) basketURL(t core.Target) string {
	return fmt.Sprintf("%s/%s/basket/%s", c.baseURL, url.PathEscape(t.PantryID), url.PathEscape(t.BasketName))
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method string, t core.Target, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.InvalidParams(fmt.Sprintf("value cannot be encoded as JSON: %v", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.basketURL(t), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.RemoteUnavailable(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.RemoteUnavailable(fmt.Errorf("failed to read response body: %w", err))
	}

	c.logger.DebugContext(ctx, "pantry request",
		"method", method,
		"basket", t.BasketName,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.BasketNotFound(t.BasketName)
	default:
		return nil, errors.RemoteStatus(resp.StatusCode, strings.TrimSpace(string(data)))
	}
}

// payload renders a response body as JSON text: JSON bodies are compacted,
// anything else (Pantry acknowledges writes in plain text) becomes a JSON string.
func payload(data []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return compact(trimmed), nil
	}
	encoded, err := json.Marshal(string(trimmed))
	if err != nil {
		return nil, errors.InvalidResponse(err)
	}
	return encoded, nil
}

func compact(data []byte) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return json.RawMessage(data)
	}
	return buf.Bytes()
}
