package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/browserid"
)

// TestBrowserID is the browser identity used by handler tests.
const TestBrowserID = "6f1c2a9e-4b7d-4e55-9a51-3c2f0d8e7b10"

// WithBrowser adds a browser identity to the request context for testing.
// This bypasses the cookie middleware and injects the id directly.
func WithBrowser(r *http.Request, id string) *http.Request {
	return r.WithContext(browserid.WithID(r.Context(), id))
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewBrowserRequest creates an HTTP request with TestBrowserID in context.
// An empty body sends no body.
func NewBrowserRequest(method, target, body string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return WithBrowser(req, TestBrowserID)
}
