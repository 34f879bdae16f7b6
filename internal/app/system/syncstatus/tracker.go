// Package syncstatus tracks the state of the external data sync process.
//
// The Tracker holds the last status seen; the Poller refreshes it on an
// interval. A failed poll never clears a known status, it only raises the
// unavailable flag until the next successful poll.
package syncstatus

import (
	"sync"
	"time"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
)

// CanTransition reports whether a sync run can move from one state to another:
// idle → syncing → completed | partial_success | failed → idle, and a new run
// may start from any terminal state. Staying in the same state is allowed.
func CanTransition(from, to models.SyncState) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	switch from {
	case models.SyncIdle:
		return to == models.SyncSyncing
	case models.SyncSyncing:
		return to.Terminal()
	}
	// terminal
	return to == models.SyncIdle || to == models.SyncSyncing
}

// Snapshot is what the status badge renders.
type Snapshot struct {
	Status      models.SyncStatus `json:"status"`
	Known       bool              `json:"known"`
	Unavailable bool              `json:"unavailable"`
	LastError   string            `json:"last_error,omitempty"`
	CheckedAt   *time.Time        `json:"checked_at,omitempty"`
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu        sync.RWMutex
	status    models.SyncStatus
	known     bool
	lastErr   string
	checkedAt time.Time
	now       func() time.Time
}

// NewTracker returns a tracker with no known status.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// Apply replaces the known status wholesale and clears the unavailable flag.
// It reports whether the change is a regular transition; polls can miss
// intermediate states, so an irregular one is still applied.
func (t *Tracker) Apply(s models.SyncStatus) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	regular := !t.known || CanTransition(t.status.State, s.State)
	t.status = s
	t.known = true
	t.lastErr = ""
	t.checkedAt = t.now().UTC()
	return regular
}

// MarkUnavailable records a failed poll. The known status is kept.
func (t *Tracker) MarkUnavailable(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err == nil {
		t.lastErr = "status unavailable"
		return
	}
	t.lastErr = err.Error()
}

// Snapshot returns a copy of the current view.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Snapshot{
		Status:      t.status,
		Known:       t.known,
		Unavailable: t.lastErr != "",
		LastError:   t.lastErr,
	}
	if !t.checkedAt.IsZero() {
		at := t.checkedAt
		s.CheckedAt = &at
	}
	return s
}
