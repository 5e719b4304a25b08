// Package remote is a typed HTTP client for a back-office gateway. Each
// resource client mirrors the method shape of the corresponding local
// service so callers can swap one for the other.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperr "github.com/solara-studio/backoffice/internal/errors"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token attached to every request. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client is the shared transport for the resource clients.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// Config configures a gateway client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
}

// New creates a gateway client. BaseURL must point at the gateway root,
// e.g. "https://admin.example.com".
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("remote: base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("remote: invalid base URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     cfg.Tokens,
	}, nil
}

// Users returns the user resource client.
func (c *Client) Users() *UserClient { return &UserClient{c} }

// Tickets returns the ticket resource client.
func (c *Client) Tickets() *TicketClient { return &TicketClient{c} }

// Quotes returns the quote resource client.
func (c *Client) Quotes() *QuoteClient { return &QuoteClient{c} }

// Reviews returns the review resource client.
func (c *Client) Reviews() *ReviewClient { return &ReviewClient{c} }

// Pages returns the page resource client.
func (c *Client) Pages() *PageClient { return &PageClient{c} }

// do executes one request and decodes the response into out (when out is
// non-nil). Non-2xx responses are rebuilt into taxonomy errors from the
// gateway's error payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal("encode request body", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return apperr.Internal("build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Internal("gateway unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Internal("decode response", err)
	}
	return nil
}

// decodeError maps a gateway error payload back onto the taxonomy. A body
// that is not the expected shape degrades to an internal error carrying the
// HTTP status.
func decodeError(resp *http.Response) error {
	var payload struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && json.Unmarshal(raw, &payload) == nil && payload.Code != "" {
		return apperr.FromCode(apperr.Code(payload.Code), payload.Error)
	}
	return apperr.Internal(fmt.Sprintf("gateway returned status %d", resp.StatusCode), nil)
}
