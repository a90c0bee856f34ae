package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/studiowebux/postboard/internal/types"
)

// Notifier surfaces a message to the user
type Notifier interface {
	Notify(message string, severity types.Severity)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(message string, severity types.Severity)

// Notify calls f
func (f NotifierFunc) Notify(message string, severity types.Severity) {
	f(message, severity)
}

// RequestError is a non-2xx response
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d, message: %s", e.Status, e.Message)
}

// Request describes one call against the backend
type Request struct {
	Method string
	Path   string
	Body   any // JSON-encoded when non-nil
}

// Transport is the single request wrapper every API call goes through.
// Failures are logged, reported once through the Notifier and returned.
type Transport struct {
	client   *http.Client
	baseURL  string
	notifier Notifier
	logger   *slog.Logger
}

// Option configures a Transport
type Option func(*Transport)

// WithTimeout sets the HTTP client timeout (0 = none)
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.client.Timeout = d
	}
}

// WithHTTPClient replaces the underlying client
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		t.client = c
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) {
		t.logger = l
	}
}

// New creates a Transport for baseURL
func New(baseURL string, notifier Notifier, opts ...Option) *Transport {
	t := &Transport{
		client:   &http.Client{},
		baseURL:  strings.TrimRight(baseURL, "/"),
		notifier: notifier,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// BaseURL returns the backend root
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Do performs req. A JSON response is decoded into out (if non-nil);
// any other response body is returned as text.
func (t *Transport) Do(ctx context.Context, req Request, out any) (string, error) {
	text, err := t.do(ctx, req, out)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			t.logger.Debug("request cancelled", "method", req.Method, "path", req.Path)
			return "", err
		}
		t.logger.Error("request failed", "method", req.Method, "path", req.Path, "error", err, "hint", Hint(err))
		if t.notifier != nil {
			t.notifier.Notify("API request failed: "+err.Error(), types.SeverityError)
		}
		return "", err
	}
	return text, nil
}

func (t *Transport) do(ctx context.Context, req Request, out any) (string, error) {
	startTime := time.Now()

	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, t.baseURL+req.Path, bodyReader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if bodyReader != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json, text/plain")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	t.logger.Debug("request completed",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration", FormatDuration(time.Since(startTime).Milliseconds()),
		"size", FormatSize(len(bodyBytes)),
	)

	if !IsSuccessStatus(resp.StatusCode) {
		return "", &RequestError{Status: resp.StatusCode, Message: strings.TrimSpace(string(bodyBytes))}
	}

	if IsJSONContentType(resp.Header.Get("Content-Type")) {
		if out != nil && len(bytes.TrimSpace(bodyBytes)) > 0 {
			if err := json.Unmarshal(bodyBytes, out); err != nil {
				return "", fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return "", nil
	}
	return string(bodyBytes), nil
}

// IsJSONContentType reports whether a Content-Type header declares JSON
func IsJSONContentType(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
