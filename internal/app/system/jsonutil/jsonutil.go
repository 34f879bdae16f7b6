// Package jsonutil writes the JSON bodies of the dashboard API.
//
// Error bodies have the shape {"error": message, "code": code}; the code is a
// stable machine-readable token the client switches on, the message is for logs.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error codes.
const (
	CodeBadRequest  = "bad_request"
	CodeNotFound    = "not_found"
	CodeForbidden   = "forbidden"
	CodeStale       = "stale_request"
	CodeUnavailable = "upstream_unavailable"
	CodeInternal    = "internal"
)

// DefaultMaxBody bounds request bodies read by Decode.
const DefaultMaxBody = 64 << 10

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// JSON writes data with the given status code. A nil data writes headers only.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// OK writes a 200 response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// NoContent writes a 204 response with no body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes an error envelope.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{Error: message, Code: code})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, CodeBadRequest, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, CodeNotFound, message)
}

// Stale answers a request superseded by a newer one from the same client.
func Stale(w http.ResponseWriter) {
	Error(w, http.StatusConflict, CodeStale, "superseded by a newer request")
}

// Unavailable answers when the analytics API could not be reached.
func Unavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadGateway, CodeUnavailable, message)
}

// InternalError hides details from the client; log the cause separately.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, CodeInternal, "internal error")
}

// Decode reads one JSON value from the request body into v. Unknown fields,
// trailing data and bodies over DefaultMaxBody are rejected.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, DefaultMaxBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("body exceeds %d bytes", tooLarge.Limit)
		}
		if errors.Is(err, io.EOF) {
			return errors.New("body is empty")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return errors.New("body must contain a single JSON value")
	}
	return nil
}
