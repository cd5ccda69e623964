package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrMalformedResponse is wrapped when the backend answers with a body that is not the expected JSON.
var ErrMalformedResponse = errors.New("malformed backend response")

// BackendError describes a failed request to the news backend.
type BackendError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Backend issues requests against the news backend rooted at a base URL.
type Backend struct {
	base   *url.URL
	client *http.Client
	logger *zap.Logger
}

// NewBackend returns a client for the backend at baseURL. A trailing slash is
// added so relative endpoint paths resolve under it.
func NewBackend(baseURL string, timeout time.Duration, logger *zap.Logger) (*Backend, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend url: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{
		base:   u,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

// URL resolves an endpoint path, appending ?id=<id> when id is not empty.
func (b *Backend) URL(path, id string) string {
	u := b.base.ResolveReference(&url.URL{Path: path})
	if id != "" {
		q := u.Query()
		q.Set("id", id)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Get fetches path (with the optional id) and decodes the JSON body into out.
// A nil out discards the body.
func (b *Backend) Get(ctx context.Context, path, id string, out interface{}) error {
	target := b.URL(path, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &BackendError{Op: http.MethodGet, URL: target, Err: err}
	}
	return b.do(req, out)
}

// Post submits payload form-encoded to path and decodes the JSON body into out.
func (b *Backend) Post(ctx context.Context, path string, payload url.Values, out interface{}) error {
	target := b.URL(path, "")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(payload.Encode()))
	if err != nil {
		return &BackendError{Op: http.MethodPost, URL: target, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req, out)
}

func (b *Backend) do(req *http.Request, out interface{}) error {
	start := time.Now()
	target := req.URL.String()
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.Warn("backend request failed",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Error(err))
		return &BackendError{Op: req.Method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	b.logger.Debug("backend request",
		zap.String("method", req.Method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &BackendError{
			Op:         req.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if out == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		if err != nil {
			return &BackendError{Op: req.Method, URL: target, StatusCode: resp.StatusCode, Err: err}
		}
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &BackendError{Op: req.Method, URL: target, StatusCode: resp.StatusCode, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		b.logger.Warn("backend returned malformed body",
			zap.String("url", target),
			zap.Int("bytes", len(body)),
			zap.Error(err))
		return &BackendError{
			Op:         req.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %v", ErrMalformedResponse, err),
		}
	}
	return nil
}
