package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	preferencestore "github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/store/preferences"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/testutil"
	"go.uber.org/zap"
)

type brokenBackend struct{}

func (brokenBackend) Load(context.Context, string, string) ([]byte, error) {
	return nil, errors.New("mongo down")
}
func (brokenBackend) Save(context.Context, string, string, []byte) error {
	return errors.New("mongo down")
}

func newRouter(backend preferencestore.Backend, protect func(http.Handler) http.Handler) http.Handler {
	h := NewHandler(preferencestore.NewBridge(backend, zap.NewNop()), zap.NewNop())
	return Routes(h, protect)
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPutThenGet(t *testing.T) {
	h := newRouter(preferencestore.NewMemory(), nil)

	rec := do(h, testutil.NewBrowserRequest(http.MethodPut, "/view_mode", `{"mode":"table"}`))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = do(h, testutil.NewBrowserRequest(http.MethodGet, "/view_mode", ""))
	var got models.ViewPreference
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal error: %v", err)
	}
	if got.Mode != models.ViewTable {
		t.Errorf("mode = %q, want table", got.Mode)
	}

	// another browser still sees the default
	req := testutil.WithBrowser(httptest.NewRequest(http.MethodGet, "/view_mode", nil), "someone-else")
	rec = do(h, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal error: %v", err)
	}
	if got != models.DefaultViewPreference() {
		t.Errorf("other browser = %+v, want default", got)
	}
}

func TestPut_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
	}{
		{"unknown key", "/font_size", `{"size":12}`, http.StatusNotFound},
		{"invalid value", "/view_mode", `{"mode":"pie"}`, http.StatusBadRequest},
		{"malformed", "/comparison_mode", `{"mode":`, http.StatusBadRequest},
		{"unknown field", "/legend", `{"visible":["net_sales"],"color":"red"}`, http.StatusBadRequest},
		{"empty series name", "/legend", `{"visible":[""]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := preferencestore.NewMemory()
			h := newRouter(mem, nil)

			rec := do(h, testutil.NewBrowserRequest(http.MethodPut, tt.target, tt.body))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestGet_UnknownKey(t *testing.T) {
	h := newRouter(preferencestore.NewMemory(), nil)
	if rec := do(h, testutil.NewBrowserRequest(http.MethodGet, "/font_size", "")); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestList_FillsDefaults(t *testing.T) {
	mem := preferencestore.NewMemory()
	mem.Put(testutil.TestBrowserID, models.PrefComparisonMode, []byte(`{"mode":"mom"}`))
	mem.Put(testutil.TestBrowserID, models.PrefViewMode, []byte(`not json`))
	h := newRouter(mem, nil)

	rec := do(h, testutil.NewBrowserRequest(http.MethodGet, "/", ""))
	var got struct {
		ViewMode       models.ViewPreference           `json:"view_mode"`
		Legend         models.LegendPreference         `json:"legend"`
		ComparisonMode models.ComparisonModePreference `json:"comparison_mode"`
		Sections       models.SectionPreference        `json:"sections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal error: %v", err)
	}
	if got.ComparisonMode.Mode != models.MoM {
		t.Errorf("comparison_mode = %q, want stored mom", got.ComparisonMode.Mode)
	}
	if got.ViewMode != models.DefaultViewPreference() {
		t.Errorf("corrupt view_mode = %+v, want default", got.ViewMode)
	}
	if len(got.Legend.Visible) != len(models.DefaultLegendPreference().Visible) {
		t.Errorf("legend = %+v, want default", got.Legend)
	}
	if got.Sections.Collapsed == nil {
		t.Error("sections should default to an empty map")
	}
}

func TestBrokenStorageIsBestEffort(t *testing.T) {
	h := newRouter(brokenBackend{}, nil)

	if rec := do(h, testutil.NewBrowserRequest(http.MethodPut, "/sections", `{"collapsed":{"ads":true}}`)); rec.Code != http.StatusNoContent {
		t.Errorf("PUT status = %d, want 204 despite storage failure", rec.Code)
	}
	rec := do(h, testutil.NewBrowserRequest(http.MethodGet, "/sections", ""))
	if rec.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200 with default", rec.Code)
	}
}

func TestMissingBrowserID(t *testing.T) {
	h := newRouter(preferencestore.NewMemory(), nil)
	if rec := do(h, httptest.NewRequest(http.MethodGet, "/view_mode", nil)); rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestPut_RequiresCSRFToken(t *testing.T) {
	h := newRouter(preferencestore.NewMemory(), testutil.CSRFMiddleware(t))

	rec := do(h, testutil.NewBrowserRequest(http.MethodPut, "/view_mode", `{"mode":"chart"}`))
	if rec.Code != http.StatusForbidden {
		t.Errorf("PUT without token status = %d, want 403", rec.Code)
	}

	req := testutil.NewBrowserRequest(http.MethodPut, "/view_mode", `{"mode":"chart"}`)
	testutil.WithCSRF(t, h, "/view_mode", req)
	if rec := do(h, req); rec.Code != http.StatusNoContent {
		t.Errorf("PUT with token status = %d, want 204", rec.Code)
	}
}
