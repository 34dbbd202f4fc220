package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Client issues JSON requests against the finance API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	headers    http.Header
	logger     *zap.Logger
}

// New validates the base URL and constructs a client.
func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("apiclient: base URL is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: base URL %q must use http or https", baseURL)
	}

	c := &Client{
		baseURL:    trimmed,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		headers:    make(http.Header),
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// BaseURL reports the normalised base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request performs a single call. body, when non-nil, is encoded as JSON. The
// result is the decoded JSON document (objects as map[string]any, numbers as
// json.Number) or nil for 204 and empty responses.
func (c *Client) Request(ctx context.Context, method, path string, body any) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	method = strings.ToUpper(method)
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		transportErr := &TransportError{Method: method, URL: target, Err: err}
		c.logger.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Bool("timeout", transportErr.Timeout()),
			zap.Error(err),
		)
		return nil, transportErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := newHTTPError(resp.StatusCode, data)
		c.logger.Warn("api request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", httpErr.Message),
		)
		return nil, httpErr
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	return decodeJSON(data)
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, &DecodeError{Body: snippet(string(data)), Err: err}
	}
	if !json.Valid(data) {
		return nil, &DecodeError{Body: snippet(string(data)), Err: errTrailingData}
	}
	return out, nil
}

func newHTTPError(status int, data []byte) *HTTPError {
	httpErr := &HTTPError{
		Status: status,
		Body:   snippet(string(data)),
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		httpErr.Message = plainText(string(data))
		if httpErr.Message == "" {
			httpErr.Message = http.StatusText(status)
		}
		return httpErr
	}

	if msg, ok := payload["message"].(string); ok && strings.TrimSpace(msg) != "" {
		httpErr.Message = strings.TrimSpace(msg)
	}

	switch detail := payload["detail"].(type) {
	case string:
		if httpErr.Message == "" {
			httpErr.Message = strings.TrimSpace(detail)
		}
	case []any:
		httpErr.Fields = detailFields(detail)
		if httpErr.Message == "" {
			httpErr.Message = "request validation failed"
		}
	}

	if httpErr.Message == "" {
		httpErr.Message = http.StatusText(status)
	}
	return httpErr
}

// detailFields maps FastAPI validation entries ({"loc": ["body", "name"],
// "msg": "..."}) into dotted field paths. The leading location segment
// ("body", "query", "path") is dropped.
func detailFields(detail []any) map[string][]string {
	fields := make(map[string][]string)
	for _, entry := range detail {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		msg, _ := obj["msg"].(string)
		if strings.TrimSpace(msg) == "" {
			continue
		}

		var segments []string
		if loc, ok := obj["loc"].([]any); ok {
			for idx, raw := range loc {
				segment := fmt.Sprint(raw)
				if idx == 0 && (segment == "body" || segment == "query" || segment == "path") {
					continue
				}
				segments = append(segments, segment)
			}
		}
		key := strings.Join(segments, ".")
		fields[key] = append(fields[key], strings.TrimSpace(msg))
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
