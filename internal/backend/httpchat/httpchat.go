package httpchat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/longkey1/chatc/internal/chatc"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader carries a per-exchange identifier for operator correlation.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 512

	// MaxResponseBody caps how much of a response is read
	MaxResponseBody = 10 << 20
)

// ErrMissingReply is returned when a 2xx response has no string "reply" field.
var ErrMissingReply = errors.New("response is missing the reply field")

// ErrResponseTooLarge is returned when a response body exceeds MaxResponseBody.
var ErrResponseTooLarge = errors.New("response body is too large")

// ChatRequest represents the request body sent to the chat endpoint
type ChatRequest struct {
	Messages  []chatc.Message `json:"messages"`
	SessionID string          `json:"sessionId"`
}

// ChatResponse represents the response from the chat endpoint.
// Reply is a pointer so that a missing field can be told apart from an empty reply.
type ChatResponse struct {
	Reply *string `json:"reply"`
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// Config defines the configuration interface for the HTTP backend
type Config interface {
	ChatURL() (string, error)
	RequestTimeout() (time.Duration, error)
}

// Client implements chatc.Backend over HTTP
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
	newID      func() string
	maxBody    int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its timeout is kept as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMaxResponseBody overrides MaxResponseBody for this client
func WithMaxResponseBody(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new HTTP backend client
func New(config Config, opts ...Option) (*Client, error) {
	url, err := config.ChatURL()
	if err != nil {
		return nil, fmt.Errorf("resolving chat URL: %w", err)
	}
	timeout, err := config.RequestTimeout()
	if err != nil {
		return nil, fmt.Errorf("resolving timeout: %w", err)
	}

	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
		newID:      uuid.NewString,
		maxBody:    MaxResponseBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the chat endpoint this client posts to
func (c *Client) URL() string {
	return c.url
}

// Chat posts the conversation and session identifier and returns the reply text.
// No retries are attempted.
func (c *Client) Chat(ctx context.Context, messages []chatc.Message, sessionID string) (string, error) {
	if messages == nil {
		messages = []chatc.Message{}
	}
	reqBody := ChatRequest{
		Messages:  messages,
		SessionID: sessionID,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	requestID := c.newID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	log := c.logger.With(
		zap.String("session_id", sessionID),
		zap.String("request_id", requestID),
	)
	log.Debug("sending chat request", zap.String("url", c.url), zap.Int("messages", len(messages)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	// Read one byte past the limit to detect oversized bodies
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}
	tooLarge := int64(len(body)) > c.maxBody
	if tooLarge {
		body = body[:c.maxBody]
	}

	log.Debug("received chat response", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(body)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	if tooLarge {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrResponseTooLarge, c.maxBody)
	}

	var result ChatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	if result.Reply == nil {
		return "", ErrMissingReply
	}

	return *result.Reply, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
