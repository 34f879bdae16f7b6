// internal/app/system/syncstatus/poller.go
package syncstatus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
	"go.uber.org/zap"
)

const (
	DefaultInterval    = time.Minute
	DefaultPollTimeout = 10 * time.Second
)

var (
	ErrAlreadyRunning  = errors.New("sync status poller already running")
	ErrInvalidInterval = errors.New("poll interval must be positive")
)

// Fetcher reads the current sync status from upstream.
type Fetcher interface {
	SyncStatus(ctx context.Context) (models.SyncStatus, error)
}

// Poller refreshes a Tracker on a fixed interval. It owns at most one ticker.
type Poller struct {
	fetch   Fetcher
	tracker *Tracker
	logger  *zap.Logger
	timeout time.Duration

	mu       sync.Mutex
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
	reset    chan time.Duration
}

// NewPoller creates a stopped poller. Non-positive interval or timeout select the defaults.
func NewPoller(fetch Fetcher, tracker *Tracker, interval, timeout time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	return &Poller{
		fetch:    fetch,
		tracker:  tracker,
		logger:   logger,
		timeout:  timeout,
		interval: interval,
	}
}

// Tracker returns the tracker this poller feeds.
func (p *Poller) Tracker() *Tracker { return p.tracker }

// Interval returns the current polling interval.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// Running reports whether the polling loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Start polls immediately, then on every interval until Stop or ctx is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.reset = make(chan time.Duration, 1)

	go p.loop(loopCtx, p.interval, p.reset, p.done)

	p.logger.Info("sync status poller started", zap.Duration("interval", p.interval))
	return nil
}

// Stop cancels the loop and waits for an in-flight poll within ctx's deadline.
// Stopping a stopped poller is a no-op.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done, p.reset = nil, nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		p.logger.Info("sync status poller stopped")
		return nil
	case <-ctx.Done():
		p.logger.Warn("sync status poller shutdown timed out")
		return ctx.Err()
	}
}

// SetInterval changes the cadence. A running loop clears its ticker and
// creates a new one; the next poll happens one full interval later.
func (p *Poller) SetInterval(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidInterval
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interval = d
	if p.reset == nil {
		return nil
	}
	// keep only the latest pending change
	select {
	case <-p.reset:
	default:
	}
	p.reset <- d
	return nil
}

// Mount starts the poller and returns the matching release. The release stops
// the loop at most once and waits up to the poll timeout.
func (p *Poller) Mount(ctx context.Context) (unmount func(), err error) {
	if err := p.Start(ctx); err != nil {
		return nil, err
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), p.timeout)
			defer cancel()
			_ = p.Stop(stopCtx)
		})
	}, nil
}

// PollOnce fetches once and updates the tracker.
// A poll aborted by the caller's cancellation leaves the tracker untouched.
func (p *Poller) PollOnce(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, p.timeout)
	defer cancel()

	start := time.Now()
	status, err := p.fetch.SyncStatus(ctx)
	if err != nil {
		if parent.Err() != nil {
			return err
		}
		p.tracker.MarkUnavailable(err)
		p.logger.Warn("sync status poll failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return err
	}

	if !p.tracker.Apply(status) {
		p.logger.Debug("sync status changed without an intermediate state",
			zap.String("state", string(status.State)))
	}
	p.logger.Debug("sync status poll completed",
		zap.String("state", string(status.State)),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func (p *Poller) loop(ctx context.Context, interval time.Duration, reset <-chan time.Duration, done chan struct{}) {
	defer close(done)
	defer p.release(done)

	p.poll(ctx)

	ticker := time.NewTicker(interval)
	defer func() { ticker.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-reset:
			ticker.Stop()
			ticker = time.NewTicker(d)
			p.logger.Debug("sync status poll interval changed", zap.Duration("interval", d))
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// release clears the running state when the loop ends on its own, which
// happens when the parent context of Start is cancelled. After Stop the
// state already belongs to no loop, or to a newer one.
func (p *Poller) release(done chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != done {
		return
	}
	p.cancel()
	p.cancel, p.done, p.reset = nil, nil, nil
	p.logger.Info("sync status poller stopped by context")
}

func (p *Poller) poll(ctx context.Context) {
	if err := p.PollOnce(ctx); err != nil && ctx.Err() != nil {
		p.logger.Debug("sync status poll cancelled during shutdown")
	}
}
