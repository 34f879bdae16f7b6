package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/analyticsapi"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
	"go.uber.org/zap"
)

// FakeAnalytics is an in-process stand-in for the remote analytics API.
// Unknown periods answer 404; Fail makes every endpoint answer 503.
type FakeAnalytics struct {
	Server *httptest.Server

	mu      sync.Mutex
	periods map[string]models.PeriodMetrics
	daily   map[string][]models.DailyRow
	delays  map[string]time.Duration
	status  models.SyncStatus
	fail    bool

	Calls atomic.Int32
}

// NewFakeAnalytics starts the fake server; it is closed on test cleanup.
func NewFakeAnalytics(t *testing.T) *FakeAnalytics {
	t.Helper()
	f := &FakeAnalytics{
		periods: make(map[string]models.PeriodMetrics),
		daily:   make(map[string][]models.DailyRow),
		delays:  make(map[string]time.Duration),
		status:  models.SyncStatus{State: models.SyncIdle},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(analyticsapi.PathPeriod, func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("period")
		f.wait(key)
		f.mu.Lock()
		m, ok := f.periods[key]
		f.mu.Unlock()
		f.answer(w, ok, m)
	})
	mux.HandleFunc(analyticsapi.PathDaily, func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("period")
		f.wait(key)
		f.mu.Lock()
		rows, ok := f.daily[key]
		f.mu.Unlock()
		f.answer(w, ok, map[string]any{"rows": rows})
	})
	mux.HandleFunc(analyticsapi.PathSyncStatus, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		s := f.status
		f.mu.Unlock()
		f.answer(w, true, s)
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// Client returns an analytics client pointed at the fake.
func (f *FakeAnalytics) Client(t *testing.T) *analyticsapi.Client {
	t.Helper()
	c, err := analyticsapi.New(analyticsapi.Config{BaseURL: f.Server.URL, Timeout: 5 * time.Second}, zap.NewNop())
	if err != nil {
		t.Fatalf("analyticsapi.New() error = %v", err)
	}
	return c
}

// SetPeriod registers the payload for a period key.
func (f *FakeAnalytics) SetPeriod(key string, m models.PeriodMetrics) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.Period = key
	f.periods[key] = m
}

// SetDaily registers the daily rows for a period key.
func (f *FakeAnalytics) SetDaily(key string, rows []models.DailyRow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.daily[key] = rows
}

// SetDelay makes requests for key wait d before answering.
func (f *FakeAnalytics) SetDelay(key string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays[key] = d
}

// SetStatus sets the sync status answer.
func (f *FakeAnalytics) SetStatus(s models.SyncStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = s
}

// Fail toggles 503 answers on every endpoint.
func (f *FakeAnalytics) Fail(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = on
}

func (f *FakeAnalytics) wait(key string) {
	f.mu.Lock()
	d := f.delays[key]
	f.mu.Unlock()
	if d > 0 {
		time.Sleep(d)
	}
}

func (f *FakeAnalytics) answer(w http.ResponseWriter, ok bool, body any) {
	f.Calls.Add(1)
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()

	switch {
	case fail:
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	case !ok:
		http.NotFound(w, nil)
	default:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}
}

// F returns a pointer to v, for building optional metric values.
func F(v float64) *float64 { return &v }
