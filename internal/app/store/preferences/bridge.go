package preferencestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// Validator is implemented by every preference value. A decoded value that is
// not Valid is treated as a schema mismatch.
type Validator interface {
	Valid() bool
}

// Bridge reads and writes typed preferences over a Backend. Persistence is
// best-effort: reads fall back to a default and writes never return an error.
type Bridge struct {
	backend Backend
	logger  *zap.Logger
}

// NewBridge wraps backend. A nil logger discards diagnostics.
func NewBridge(backend Backend, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{backend: backend, logger: logger}
}

// Get returns the stored preference for key, or fallback when it is missing,
// unreadable, or does not match the shape of T.
func Get[T Validator](ctx context.Context, b *Bridge, browserID, key string, fallback T) T {
	raw, err := b.backend.Load(ctx, browserID, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			b.logger.Warn("preference load failed",
				zap.String("key", key), zap.Error(err))
		}
		return fallback
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fallback
	}

	var v T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		b.logger.Debug("stored preference unreadable, using default",
			zap.String("key", key), zap.Error(err))
		return fallback
	}
	if dec.More() || !v.Valid() {
		b.logger.Debug("stored preference has unexpected shape, using default",
			zap.String("key", key))
		return fallback
	}
	return v
}

// Set stores value under key. Failures are logged and swallowed.
func Set[T Validator](ctx context.Context, b *Bridge, browserID, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		b.logger.Warn("preference encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := b.backend.Save(ctx, browserID, key, raw); err != nil {
		b.logger.Warn("preference save failed", zap.String("key", key), zap.Error(err))
	}
}
