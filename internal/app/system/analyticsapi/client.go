// Package analyticsapi is a thin JSON client for the remote analytics API.
//
// Numeric fields may be null or absent in any payload; they decode to nil
// pointers and are reported as missing inputs further down.
package analyticsapi

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

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
	"go.uber.org/zap"
)

// Upstream paths.
const (
	PathPeriod     = "/v1/analytics/period"
	PathDaily      = "/v1/analytics/daily"
	PathSyncStatus = "/v1/sync/status"
)

// maxBody bounds upstream payloads; daily tables are a few hundred rows.
const maxBody = 4 << 20

var (
	// ErrUnavailable marks transport failures and 5xx answers; callers may retry.
	ErrUnavailable = errors.New("analytics api unavailable")
	// ErrBadResponse marks answers that could not be decoded.
	ErrBadResponse = errors.New("analytics api returned a malformed response")
)

// StatusError is returned for non-2xx answers.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analytics api %s: status %d", e.Path, e.Code)
}

// Unwrap lets errors.Is(err, ErrUnavailable) match server-side failures.
func (e *StatusError) Unwrap() error {
	if e.Code >= 500 || e.Code == http.StatusTooManyRequests {
		return ErrUnavailable
	}
	return nil
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Token   string // sent as a bearer token when set
	Timeout time.Duration
}

// Client talks to one analytics API base URL. It is safe for concurrent use.
type Client struct {
	base   *url.URL
	token  string
	http   *http.Client
	logger *zap.Logger
}

// New validates cfg and returns a client.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("analytics api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("analytics api base url %q: scheme must be http or https", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:   u,
		token:  cfg.Token,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

// Period fetches the aggregate metrics of one period.
func (c *Client) Period(ctx context.Context, key models.PeriodKey) (models.PeriodMetrics, error) {
	var out models.PeriodMetrics
	if err := c.get(ctx, PathPeriod, url.Values{"period": {key.String()}}, &out); err != nil {
		return models.PeriodMetrics{}, err
	}
	if out.Period == "" {
		out.Period = key.String()
	}
	return out, nil
}

type dailyResponse struct {
	Rows []models.DailyRow `json:"rows"`
}

// Daily fetches the per-day rows of one period.
func (c *Client) Daily(ctx context.Context, key models.PeriodKey) ([]models.DailyRow, error) {
	var out dailyResponse
	if err := c.get(ctx, PathDaily, url.Values{"period": {key.String()}}, &out); err != nil {
		return nil, err
	}
	return out.Rows, nil
}

// SyncStatus fetches the state of the upstream sync process. It satisfies
// syncstatus.Fetcher.
func (c *Client) SyncStatus(ctx context.Context) (models.SyncStatus, error) {
	var out models.SyncStatus
	if err := c.get(ctx, PathSyncStatus, nil, &out); err != nil {
		return models.SyncStatus{}, err
	}
	if !out.State.Valid() {
		return models.SyncStatus{}, fmt.Errorf("%w: unknown sync state %q", ErrBadResponse, out.State)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, v any) error {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("analytics api call",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return &StatusError{Code: resp.StatusCode, Path: path}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadResponse, path, err)
	}
	return nil
}
