// Package syncstatus serves the last known state of the upstream data sync.
//
// Endpoint:
//   - GET /api/sync-status
//
// The answer never waits on the analytics API; it reports what the background
// poller last saw.
package syncstatus

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/jsonutil"
	syncsys "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/syncstatus"
)

// Poller is the part of syncsys.Poller the endpoint reads.
type Poller interface {
	Tracker() *syncsys.Tracker
	Interval() time.Duration
	Running() bool
}

type Handler struct {
	poller Poller
}

func NewHandler(p Poller) *Handler {
	return &Handler{poller: p}
}

// Response extends the tracker snapshot with the polling cadence.
type Response struct {
	syncsys.Snapshot
	Polling             bool    `json:"polling"`
	PollIntervalSeconds float64 `json:"poll_interval_seconds"`
}

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}

// Get handles GET /api/sync-status.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, Response{
		Snapshot:            h.poller.Tracker().Snapshot(),
		Polling:             h.poller.Running(),
		PollIntervalSeconds: h.poller.Interval().Seconds(),
	})
}
