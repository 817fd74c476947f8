package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/logger"
)

// Client is the single HTTP transport for the platform API. It attaches the
// bearer token when one is set, tags every request with an X-Request-ID, and
// normalizes all failures to *Error.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps outgoing requests per second. Zero disables the limiter.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
		}
	}
}

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently installed bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// GetRaw fetches a non-JSON payload (exports, downloads) as bytes.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.roundTrip(ctx, http.MethodGet, path, query, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: 0, Message: "Failed to read response body", Err: err}
	}
	if resp.StatusCode >= 400 {
		return nil, decodeError(resp.StatusCode, raw)
	}
	return raw, nil
}

// PostMultipart uploads a file plus form fields and decodes the JSON reply.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return &Error{Status: 0, Message: "Failed to build upload request", Err: err}
		}
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return &Error{Status: 0, Message: "Failed to build upload request", Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{Status: 0, Message: "Failed to read upload payload", Err: err}
	}
	if err := w.Close(); err != nil {
		return &Error{Status: 0, Message: "Failed to build upload request", Err: err}
	}

	resp, err := c.roundTrip(ctx, http.MethodPost, path, nil, w.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Status: 0, Message: "Failed to encode request body", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	resp, err := c.roundTrip(ctx, method, path, query, "application/json", reader)
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Status: 0, Message: "Request cancelled", Err: err}
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &Error{Status: 0, Message: "Failed to build request", Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	ctx = logger.WithRequestID(ctx, requestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn(ctx, "request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, &Error{Status: 0, Message: "No response received from server", Err: err}
	}

	logger.Debug(ctx, "request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	return resp, nil
}

func (c *Client) decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: 0, Message: "Failed to read response body", Err: err}
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{
			Status:  resp.StatusCode,
			Message: "Failed to decode response body",
			Err:     err,
		}
	}
	return nil
}

func decodeError(status int, raw []byte) *Error {
	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	_ = json.Unmarshal(raw, &payload)

	apiErr := &Error{
		Status:  status,
		Message: payload.Message,
		Fields:  payload.Errors,
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("Request failed with status %d", status)
	}
	return apiErr
}
