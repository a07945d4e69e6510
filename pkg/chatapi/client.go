// Package chatapi implements the HTTP client for the conversation backend:
// paged conversation listing, message history, conversation creation, and
// the streaming send-message call. Retry policy is deliberately absent;
// callers own failure handling.
package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
)

// errorBodyLimit caps how much of an error response body is kept for
// diagnostics.
const errorBodyLimit = 4 << 10

// APIError reports a non-success response from the backend.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// Body is the (truncated) response body.
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chat api: unexpected status %d: %s", e.Status, e.Body)
}

// Client talks to the conversation backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 60 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListConversations fetches one page of the conversation listing.
func (c *Client) ListConversations(ctx context.Context, page, pageSize int) (*models.ConversationPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var out models.ConversationPage
	if err := c.doJSON(ctx, http.MethodGet, "/conversations", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Messages fetches the ordered message history of a conversation.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]models.Message, error) {
	var out []models.Message
	path := "/conversations/" + url.PathEscape(conversationID) + "/messages"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateConversation creates a new conversation with the given title.
func (c *Client) CreateConversation(ctx context.Context, title string) (*models.Conversation, error) {
	var out models.Conversation
	body := map[string]string{"title": title}
	if err := c.doJSON(ctx, http.MethodPost, "/conversations", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage posts a user message and returns the raw streaming response
// body. The caller consumes it through a StreamReader and owns closing it.
func (c *Client) SendMessage(ctx context.Context, conversationID, text string) (io.ReadCloser, error) {
	payload, err := json.Marshal(map[string]string{"message": text})
	if err != nil {
		return nil, err
	}
	path := "/conversations/" + url.PathEscape(conversationID) + "/messages"
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, readAPIError(resp)
	}
	return resp.Body, nil
}

// newRequest builds a request with the shared headers.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	c.log.Debug("chat api request",
		zap.String("method", method),
		zap.String("path", path),
	)
	return req, nil
}

// doJSON performs a JSON request/response round trip.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// readAPIError captures a truncated error body.
func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
