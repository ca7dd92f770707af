// Package client consumes the /mindary REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chris-regnier/mindary/internal/api"
	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/record"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Sentinel errors for client operations.
var (
	ErrTransport   = errors.New("transport error")
	ErrStatus      = errors.New("unexpected status")
	ErrUnavailable = errors.New("server unavailable")
)

// Client talks to a mindary server. It implements diary.Source.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithBreaker replaces the default circuit breaker settings.
func WithBreaker(st gobreaker.Settings) Option {
	return func(c *Client) { c.breaker = gobreaker.NewCircuitBreaker(st) }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server URL must be http or https, got %q", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = gobreaker.NewCircuitBreaker(DefaultBreakerSettings("mindary", c.logger))
	}
	return c, nil
}

// DefaultBreakerSettings trips after five consecutive failures and probes
// again after thirty seconds. Client errors (4xx) do not count as failures.
func DefaultBreakerSettings(name string, logger *zap.Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrTransport) && !isServerError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
}

// statusError carries the HTTP status of a failed response.
type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string {
	if e.msg != "" {
		return fmt.Sprintf("%s: %d %s", ErrStatus, e.code, e.msg)
	}
	return fmt.Sprintf("%s: %d", ErrStatus, e.code)
}

func (e *statusError) Unwrap() error { return ErrStatus }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.code
	}
	return 0
}

func isServerError(err error) bool {
	return StatusCode(err) >= 500
}

// Fetch reads the memos and records stored for day. A 404 is treated as
// an empty day.
func (c *Client) Fetch(ctx context.Context, day string) (diary.Snapshot, error) {
	q := url.Values{"date": {day}}
	var resp api.DiaryResponse
	err := c.do(ctx, http.MethodGet, api.DiaryPath+"?"+q.Encode(), nil, &resp)
	if StatusCode(err) == http.StatusNotFound {
		return diary.Snapshot{Chats: []record.Memo{}, Records: []record.Record{}}, nil
	}
	if err != nil {
		return diary.Snapshot{}, err
	}
	return diary.Snapshot{Chats: resp.Chats, Records: resp.Records}, nil
}

// CreateRecord submits a record written through the wizard.
func (c *Client) CreateRecord(ctx context.Context, d diary.Draft) (record.Record, error) {
	req := api.CreateRecordRequest{
		Date:     d.Day,
		Category: string(d.Category),
		Title:    d.Title,
		Content:  d.Content,
	}
	var r record.Record
	if err := c.do(ctx, http.MethodPost, api.RecordsPath, req, &r); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// CreateMemo submits a chat memo for day.
func (c *Client) CreateMemo(ctx context.Context, day, role, content string) (record.Memo, error) {
	req := api.CreateMemoRequest{Date: day, Role: role, Content: content}
	var m record.Memo
	if err := c.do(ctx, http.MethodPost, api.ChatsPath, req, &m); err != nil {
		return record.Memo{}, err
	}
	return m, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr)
		return &statusError{code: resp.StatusCode, msg: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrTransport, err)
	}
	return nil
}
