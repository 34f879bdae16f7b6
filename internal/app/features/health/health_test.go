package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	syncsys "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/syncstatus"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context, *readpref.ReadPref) error { return f.err }

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHandler_Check(t *testing.T) {
	known := syncsys.NewTracker()
	known.Apply(models.SyncStatus{State: models.SyncCompleted})
	down := syncsys.NewTracker()
	down.Apply(models.SyncStatus{State: models.SyncCompleted})
	down.MarkUnavailable(errors.New("connection refused"))

	tests := []struct {
		name         string
		mongo        Pinger
		tracker      *syncsys.Tracker
		wantCode     int
		wantStatus   string
		wantMongo    string
		wantUpstream string
	}{
		{"all ok", fakePinger{}, known, http.StatusOK, "ok", StateOK, StateOK},
		{"no poll yet", fakePinger{}, syncsys.NewTracker(), http.StatusOK, "ok", StateOK, StateUnknown},
		{"upstream down", fakePinger{}, down, http.StatusOK, "degraded", StateOK, StateUnavailable},
		{"mongo down", fakePinger{err: errors.New("timeout")}, down, http.StatusServiceUnavailable, "unhealthy", StateUnavailable, StateUnavailable},
		{"memory store", nil, known, http.StatusOK, "ok", StateDisabled, StateOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.mongo, tt.tracker, zap.NewNop())
			rec := httptest.NewRecorder()
			h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("Check() status = %d, want %d", rec.Code, tt.wantCode)
			}
			resp := decode(t, rec)
			if resp.Status != tt.wantStatus {
				t.Errorf("response status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if resp.Services["mongodb"] != tt.wantMongo {
				t.Errorf("mongodb = %q, want %q", resp.Services["mongodb"], tt.wantMongo)
			}
			if resp.Services["analytics_api"] != tt.wantUpstream {
				t.Errorf("analytics_api = %q, want %q", resp.Services["analytics_api"], tt.wantUpstream)
			}
		})
	}
}

func TestHandler_CheckWithMongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db.Client(), nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Check() status = %d, want %d", rec.Code, http.StatusOK)
	}
	if resp := decode(t, rec); resp.Services["mongodb"] != StateOK {
		t.Errorf("mongodb status = %q, want %q", resp.Services["mongodb"], StateOK)
	}
}

func TestHandler_Ready(t *testing.T) {
	tests := []struct {
		name       string
		mongo      Pinger
		wantCode   int
		wantStatus string
	}{
		{"mongo up", fakePinger{}, http.StatusOK, "ready"},
		{"mongo down", fakePinger{err: errors.New("down")}, http.StatusServiceUnavailable, "not ready"},
		{"no mongo", nil, http.StatusOK, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.mongo, nil, zap.NewNop())
			rec := httptest.NewRecorder()
			h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("Ready() status = %d, want %d", rec.Code, tt.wantCode)
			}
			if resp := decode(t, rec); resp.Status != tt.wantStatus {
				t.Errorf("Ready() status field = %q, want %q", resp.Status, tt.wantStatus)
			}
		})
	}
}

func TestHandler_Live(t *testing.T) {
	// Live doesn't need DB - just check the handler works
	h := NewHandler(nil, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Live() status = %d, want %d", rec.Code, http.StatusOK)
	}
	if resp := decode(t, rec); resp.Status != "alive" {
		t.Errorf("Live() status field = %q, want alive", resp.Status)
	}
}

func TestMountRootEndpoints(t *testing.T) {
	r := chi.NewRouter()
	MountRootEndpoints(r, NewHandler(fakePinger{}, nil, zap.NewNop()))

	for _, path := range []string{"/ready", "/readyz", "/livez"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
	}
}
