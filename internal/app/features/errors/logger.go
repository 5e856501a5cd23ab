// internal/app/features/errors/logger.go
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and renders the matching
// error page (or an htmx toast trigger for partial requests).
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	f := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		f = append(f, zap.Error(err))
	}
	return f
}

// LogServerError logs at error level and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, e.fields(r, err)...)
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogForbidden logs at warn level and renders a 403 page.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, msg, userMsg, backURL string) {
	e.Log.Warn(msg, e.fields(r, nil)...)
	RenderForbidden(w, r, userMsg, backURL)
}

// HTMXLogServerError logs and answers an htmx request with an error toast.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Error(msg, e.fields(r, err)...)
	Toast(w, http.StatusInternalServerError, "error", userMsg)
}

// HTMXLogBadRequest logs and answers an htmx request with an error toast.
func (e *ErrorLogger) HTMXLogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	Toast(w, http.StatusBadRequest, "error", userMsg)
}

// LogBackendError maps a backend failure onto a page:
//   - 401/403 from the backend means the token is no longer accepted: sign in again
//   - 404 renders not found with the backend's message
//   - 400/422 renders bad request with the backend's message
//   - anything else (5xx, network) renders 502
//
// htmx requests get a toast instead of a page.
func (e *ErrorLogger) LogBackendError(w http.ResponseWriter, r *http.Request, msg string, err error, backURL string) {
	userMsg := backend.UserMessage(err)
	var se *backend.ServerError
	isServer := errors.As(err, &se)

	switch {
	case isServer && backend.IsUnauthorized(err):
		e.Log.Warn(msg, e.fields(r, err)...)
		if isHTMX(r) {
			w.Header().Set("HX-Redirect", "/login")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		RenderUnauthorized(w, r, "/login")
	case isServer && se.Status == http.StatusNotFound:
		e.Log.Info(msg, e.fields(r, err)...)
		if isHTMX(r) {
			Toast(w, http.StatusNotFound, "error", userMsg)
			return
		}
		RenderNotFound(w, r, userMsg, backURL)
	case isServer && se.Status >= 400 && se.Status < 500:
		e.Log.Warn(msg, e.fields(r, err)...)
		if isHTMX(r) {
			Toast(w, se.Status, "error", userMsg)
			return
		}
		RenderBadRequest(w, r, userMsg, backURL)
	default:
		e.Log.Error(msg, e.fields(r, err)...)
		if isHTMX(r) {
			Toast(w, http.StatusBadGateway, "error", userMsg)
			return
		}
		RenderUnavailable(w, r, userMsg, backURL)
	}
}

// Toast answers an htmx request with an HX-Trigger that the layout turns into
// a notification.
func Toast(w http.ResponseWriter, status int, kind, msg string) {
	payload, _ := json.Marshal(map[string]map[string]string{
		"toast": {"kind": kind, "message": msg},
	})
	w.Header().Set("HX-Trigger", string(payload))
	w.WriteHeader(status)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") != ""
}
