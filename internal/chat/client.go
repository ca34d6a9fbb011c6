// Package chat wraps the upstream generative-language API behind a small
// client: one message in, one generated reply out. The upstream is treated
// as a black box; its failures are preserved for diagnostics but never
// shown verbatim to customers.
package chat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotConfigured is returned when no upstream API key is present. This
// is a server configuration error, distinct from user input errors.
var ErrNotConfigured = errors.New("chat: upstream API key not configured")

// UpstreamError carries the upstream status and detail for logs. Handlers
// map it to a generic failure for the client.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Detail)
}

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"

	defaultSystemInstruction = "You are a helpful assistant for Atlas Parfum, " +
		"a luxury perfume e-commerce website. Help customers with their questions " +
		"about perfumes, recommendations, and orders. Be friendly, knowledgeable, " +
		"and professional."

	// Upstream detail is log material only; keep it bounded.
	maxDetailBytes = 2 << 10
)

// Client talks to the generateContent endpoint of the upstream service.
type Client struct {
	httpClient        *http.Client
	apiKey            string
	baseURL           string
	model             string
	systemInstruction string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at a different upstream host. Tests use
// this to target an httptest server.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithModel selects the upstream model.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithSystemInstruction replaces the storefront assistant persona.
func WithSystemInstruction(instruction string) Option {
	return func(c *Client) { c.systemInstruction = instruction }
}

// NewClient builds a Client. An empty apiKey is allowed; Send will return
// ErrNotConfigured until one is provided.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:        &http.Client{Timeout: 30 * time.Second},
		apiKey:            apiKey,
		baseURL:           defaultBaseURL,
		model:             defaultModel,
		systemInstruction: defaultSystemInstruction,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an upstream API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Send forwards the customer's message upstream and returns the generated
// reply text.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body := encodeGenerateRequest(c.systemInstruction, message)
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "call upstream")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.Wrap(err, "read upstream response")
	}

	if resp.StatusCode != http.StatusOK {
		detail := string(raw)
		if len(detail) > maxDetailBytes {
			detail = detail[:maxDetailBytes]
		}
		return "", &UpstreamError{StatusCode: resp.StatusCode, Detail: detail}
	}

	reply, err := decodeReply(raw)
	if err != nil {
		return "", errors.Wrap(err, "decode upstream response")
	}
	if reply == "" {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Detail: "no candidates in response"}
	}
	return reply, nil
}
