// Package timeouts provides centralized timeout values for handler operations.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing     = 2 * time.Second
	DefaultUpstream = 15 * time.Second
	DefaultRequest  = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping     = DefaultPing
	upstream = DefaultUpstream
	request  = DefaultRequest
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Upstream returns the budget for the analytics API calls of one request.
func Upstream() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return upstream
}

// Request returns the overall handler timeout.
func Request() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return request
}

// Config holds timeout configuration values. Zero fields keep the current value.
type Config struct {
	Ping     time.Duration
	Upstream time.Duration
	Request  time.Duration
}

// Configure sets custom timeout values.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Upstream > 0 {
		upstream = cfg.Upstream
	}
	if cfg.Request > 0 {
		request = cfg.Request
	}
}

// Reset restores all timeouts to defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	upstream = DefaultUpstream
	request = DefaultRequest
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Upstream: upstream, Request: request}
}

// WithTimeout creates a context with timeout. The returned cancel logs when
// the deadline was hit.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
