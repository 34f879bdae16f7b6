// internal/app/features/errors/errors.go
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/analyticsapi"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/browserid"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// ErrorLogger wraps the zap logger for error logging.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger creates a new ErrorLogger. A nil logger discards output.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{logger: logger}
}

// Log logs an error with the given message and error.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	e.logger.Error(msg, requestFields(r, err)...)
}

// LogWithFields logs an error with additional fields.
func (e *ErrorLogger) LogWithFields(r *http.Request, msg string, err error, fields ...zap.Field) {
	e.logger.Error(msg, append(requestFields(r, err), fields...)...)
}

// Upstream logs err and answers 502 when the analytics API is unreachable or
// misbehaving, 500 otherwise. Unavailability is expected and logged at Warn.
func (e *ErrorLogger) Upstream(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case stderrors.Is(err, analyticsapi.ErrUnavailable):
		e.logger.Warn(msg, requestFields(r, err)...)
		jsonutil.Unavailable(w, "analytics service unavailable")
	case stderrors.Is(err, analyticsapi.ErrBadResponse):
		e.Log(r, msg, err)
		jsonutil.Unavailable(w, "analytics service returned an invalid response")
	default:
		var se *analyticsapi.StatusError
		if stderrors.As(err, &se) && se.Code == http.StatusNotFound {
			jsonutil.NotFound(w, "no analytics data for the requested period")
			return
		}
		e.Log(r, msg, err)
		jsonutil.InternalError(w)
	}
}

func requestFields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	}
	if id, ok := browserid.FromContext(r.Context()); ok {
		fields = append(fields, zap.String("browser_id", id))
	}
	return fields
}

// Handler provides JSON error handlers for the router.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new error Handler.
func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{logger: logger}
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	jsonutil.NotFound(w, "no route for "+r.URL.Path)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonutil.Error(w, http.StatusMethodNotAllowed, jsonutil.CodeBadRequest, r.Method+" not allowed on "+r.URL.Path)
}

// CSRFFailure is installed as the gorilla/csrf error handler.
func (h *Handler) CSRFFailure(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("csrf check failed",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.NamedError("reason", csrf.FailureReason(r)),
	)
	jsonutil.Error(w, http.StatusForbidden, jsonutil.CodeForbidden, "csrf token missing or invalid")
}
