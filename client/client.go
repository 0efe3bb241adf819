// Package client provides thin per-resource wrappers over the storefront
// REST backend. Every wrapper is a plain request/response call: the client
// attaches the bearer token when one is available, decodes JSON bodies, and
// maps failures onto the storefront error taxonomy. Wire dates are RFC3339;
// no alternate encodings are tolerated.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	storefront "github.com/goliatone/go-storefront"
)

const defaultTimeout = 10 * time.Second

// TokenSource supplies the bearer token for authenticated requests. An
// empty token means the request goes out anonymous.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}

// Config holds client construction options.
type Config struct {
	BaseURL string
	Tokens  TokenSource

	HTTPClient *http.Client
	Logger     storefront.Logger
}

// Client is the REST backend client. Resource surfaces hang off it so call
// sites read client.Auth.Login, client.Orders.Place, and so on.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     storefront.Logger

	Auth          *AuthService
	Catalog       *CatalogService
	Orders        *OrderService
	Users         *UserService
	Admin         *AdminService
	Notifications *NotificationService
}

// New creates a backend client rooted at cfg.BaseURL.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     cfg.Tokens,
		logger:     logger,
	}

	c.Auth = &AuthService{client: c}
	c.Catalog = &CatalogService{client: c}
	c.Orders = &OrderService{client: c}
	c.Users = &UserService{client: c}
	c.Admin = &AdminService{client: c}
	c.Notifications = &NotificationService{client: c}

	return c
}

// NewFromConfig builds a client from host configuration. A non-positive
// request timeout falls back to the default.
func NewFromConfig(cfg storefront.Config, tokens TokenSource) *Client {
	timeout := defaultTimeout
	if secs := cfg.GetRequestTimeout(); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	return New(Config{
		BaseURL:    cfg.GetBaseURL(),
		Tokens:     tokens,
		HTTPClient: &http.Client{Timeout: timeout},
	})
}

// do issues a request and decodes the JSON response into out when out is
// non-nil. Transport failures map to the network category so callers can
// distinguish "backend down" from "backend said no".
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	return c.doWithBearer(ctx, method, path, payload, out, "")
}

// doWithBearer is do with an explicit bearer token overriding the token
// source. Used by logout, which must send the exact token being abandoned.
func (c *Client) doWithBearer(ctx context.Context, method, path string, payload, out any, bearer string) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to encode request payload")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	switch {
	case bearer != "":
		req.Header.Set("Authorization", "Bearer "+bearer)
	case c.tokens != nil:
		token, err := c.tokens.Get(ctx)
		if err != nil {
			c.logger.Warn("token source read failed, sending anonymous request", "error", err)
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return storefront.ErrBackendUnreachable.Clone().WithMetadata(map[string]any{
			"method": method,
			"path":   path,
			"cause":  err.Error(),
		})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, errors.CategoryExternal, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(method, path, resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, errors.CategoryExternal, "failed to decode response body")
	}

	return nil
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func (c *Client) errorFromResponse(method, path string, status int, raw []byte) error {
	serverErr := apiError{}
	if len(raw) > 0 {
		// The body is advisory; an undecodable error payload still maps by
		// status code.
		_ = json.Unmarshal(raw, &serverErr)
	}

	message := serverErr.text()
	metadata := map[string]any{
		"method": method,
		"path":   path,
		"status": status,
	}
	if message != "" {
		metadata["message"] = message
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return storefront.ErrNotAuthenticated.Clone().WithMetadata(metadata)
	case status == http.StatusConflict:
		return storefront.ErrStockConflict.Clone().WithMetadata(metadata)
	case status == http.StatusBadRequest && isOrderPath(path):
		// The backend reports insufficient stock on order placement as a
		// 400 with a message; surface it as a conflict so the cart is kept
		// for retry.
		return storefront.ErrStockConflict.Clone().WithMetadata(metadata)
	case status >= 400 && status < 500:
		if message == "" {
			message = fmt.Sprintf("request rejected with status %d", status)
		}
		return errors.New(message, errors.CategoryBadInput).
			WithCode(status).
			WithMetadata(metadata)
	default:
		if message == "" {
			message = fmt.Sprintf("backend error with status %d", status)
		}
		return errors.New(message, errors.CategoryExternal).
			WithCode(status).
			WithMetadata(metadata)
	}
}

func isOrderPath(path string) bool {
	return strings.HasPrefix(path, "/api/v1/orders")
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
