package jsonutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		data     any
		wantBody string
	}{
		{"200 with data", http.StatusOK, map[string]string{"mode": "wow"}, `{"mode":"wow"}`},
		{"409 with data", http.StatusConflict, map[string]int{"seq": 3}, `{"seq":3}`},
		{"nil data", http.StatusOK, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSON(rec, tt.status, tt.data)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
				t.Errorf("Cache-Control = %q, want no-store", cc)
			}
			if body := strings.TrimSpace(rec.Body.String()); body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body should be empty, got %q", rec.Body.String())
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "bad key") }, 400, CodeBadRequest},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "no such preference") }, 404, CodeNotFound},
		{"stale", Stale, 409, CodeStale},
		{"unavailable", func(w http.ResponseWriter) { Unavailable(w, "analytics api down") }, 502, CodeUnavailable},
		{"internal", InternalError, 500, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var got ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("json unmarshal error: %v", err)
			}
			if got.Code != tt.wantCode || got.Error == "" {
				t.Errorf("body = %+v, want code %q with a message", got, tt.wantCode)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	type input struct {
		Mode string `json:"mode"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"mode":"table"}`, false},
		{"empty", ``, true},
		{"malformed", `{"mode":`, true},
		{"unknown field", `{"mode":"table","x":1}`, true},
		{"two values", `{"mode":"table"} {"mode":"chart"}`, true},
		{"too large", `{"mode":"` + strings.Repeat("a", DefaultMaxBody) + `"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var in input
			err := Decode(rec, req, &in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && in.Mode != "table" {
				t.Errorf("Mode = %q, want table", in.Mode)
			}
		})
	}
}
