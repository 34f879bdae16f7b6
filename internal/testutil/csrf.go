package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/csrfguard"
)

// TestCSRFKey is a 32-byte key accepted by csrfguard.New.
const TestCSRFKey = "test-csrf-key-0123456789abcdefgh"

// CSRFMiddleware returns csrfguard protection configured for plain-http tests.
func CSRFMiddleware(t *testing.T) func(http.Handler) http.Handler {
	t.Helper()
	mw, err := csrfguard.New(csrfguard.Config{Key: TestCSRFKey})
	if err != nil {
		t.Fatalf("csrfguard.New() error = %v", err)
	}
	return mw
}

// WithCSRF performs a GET against h at target and copies the issued token
// and cookie onto req, the way a browser client would before a write.
//
// Usage:
//
//	req := testutil.NewBrowserRequest(http.MethodPut, "/view_mode", body)
//	testutil.WithCSRF(t, h, "/view_mode", req)
//	h.ServeHTTP(rec, req)
func WithCSRF(t *testing.T, h http.Handler, target string, req *http.Request) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, WithBrowser(httptest.NewRequest(http.MethodGet, target, nil), TestBrowserID))

	token := rec.Header().Get(csrfguard.HeaderName)
	if token == "" {
		t.Fatalf("GET %s issued no csrf token (status %d)", target, rec.Code)
	}
	req.Header.Set(csrfguard.HeaderName, token)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
}
