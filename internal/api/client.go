package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dkalenko/medfact/internal/model"
	"github.com/google/uuid"
)

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 4 << 20

// TokenSource supplies a bearer token for authenticated endpoints.
// An empty token means no Authorization header is attached.
type TokenSource interface {
	Token() string
}

// Client is a thin REST client for the verification backend. It performs no
// automatic retries: every failure is surfaced to the caller, who decides
// whether to resubmit.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client

	tokens         TokenSource
	onUnauthorized func()
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource attaches a bearer-token source for admin endpoints
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHook registers a callback invoked whenever the backend
// answers 401 on an authenticated call (session teardown)
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// NewClient creates a client for the given backend
func NewClient(cfg model.HTTPConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	c := &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// verifyRequest is the wire shape of POST /verify/
type verifyRequest struct {
	Text         string `json:"text"`
	ForceRefresh bool   `json:"_force_refresh,omitempty"`
	Timestamp    int64  `json:"_timestamp,omitempty"`
}

// Verify submits a claim for verification and returns the backend's verdict
func (c *Client) Verify(ctx context.Context, req model.VerificationRequest) (*model.VerificationResult, error) {
	body := verifyRequest{
		Text:         req.ClaimText,
		ForceRefresh: req.ForceRefresh,
	}
	if req.ForceRefresh {
		// Cache-busting timestamp, only meaningful alongside the flag
		body.Timestamp = time.Now().UnixMilli()
	}

	var result model.VerificationResult
	if err := c.doJSON(ctx, http.MethodPost, "/verify/", body, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/admin/login/", creds, &resp, false); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response missing token")
	}
	return &resp, nil
}

// doJSON performs one JSON request/response cycle against the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}, authed bool) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req)
	if authed {
		c.setAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return c.decodeResponse(resp, out, authed)
}

// decodeResponse maps a response onto out or an error. Any non-2xx status is
// a failure regardless of body shape.
func (c *Client) decodeResponse(resp *http.Response, out interface{}, authed bool) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if authed && resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}

		apiErr := &APIError{Status: resp.StatusCode}
		var envelope errorBody
		if jsonErr := json.Unmarshal(data, &envelope); jsonErr == nil {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
}

func (c *Client) setAuthHeader(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
