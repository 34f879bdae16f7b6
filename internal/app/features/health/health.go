// internal/app/features/health/health.go
package health

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/jsonutil"
	syncsys "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/syncstatus"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Service states reported in Response.Services.
const (
	StateOK          = "ok"
	StateUnavailable = "unavailable"
	StateUnknown     = "unknown"
	StateDisabled    = "disabled"
)

// Handler provides health check endpoints.
type Handler struct {
	mongo   Pinger
	tracker *syncsys.Tracker
	logger  *zap.Logger
}

// NewHandler creates a new health check Handler. A nil mongo means the
// preference store runs in memory; a nil tracker skips the upstream report.
func NewHandler(mongo Pinger, tracker *syncsys.Tracker, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{mongo: mongo, tracker: tracker, logger: logger}
}

// Response represents the health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns a chi.Router with health check routes mounted.
// Provides /health (full check), /health/ready, and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds /ready, /readyz and /livez directly on the root router
// for Kubernetes probes.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// Check reports every dependency. Only a failing database makes the service
// unhealthy; the analytics API being down is reported as degraded because
// the last known data keeps being served.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{Status: "ok", Services: make(map[string]string)}
	status := http.StatusOK

	resp.Services["mongodb"] = h.mongoState(r.Context())
	if resp.Services["mongodb"] == StateUnavailable {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	if h.tracker != nil {
		snap := h.tracker.Snapshot()
		switch {
		case snap.Unavailable:
			resp.Services["analytics_api"] = StateUnavailable
			if resp.Status == "ok" {
				resp.Status = "degraded"
			}
		case !snap.Known:
			resp.Services["analytics_api"] = StateUnknown
		default:
			resp.Services["analytics_api"] = StateOK
		}
	}

	jsonutil.JSON(w, status, resp)
}

// Ready checks if the service is ready to accept requests.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.mongoState(r.Context()) == StateUnavailable {
		jsonutil.JSON(w, http.StatusServiceUnavailable, Response{Status: "not ready"})
		return
	}
	jsonutil.OK(w, Response{Status: "ready"})
}

// Live checks if the service is alive.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, Response{Status: "alive"})
}

func (h *Handler) mongoState(parent context.Context) string {
	if h.mongo == nil {
		return StateDisabled
	}
	ctx, cancel := context.WithTimeout(parent, timeouts.Ping())
	defer cancel()

	if err := h.mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.logger.Warn("health check: mongodb ping failed", zap.Error(err))
		return StateUnavailable
	}
	return StateOK
}
