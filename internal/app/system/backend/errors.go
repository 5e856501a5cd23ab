// internal/app/system/backend/errors.go
package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError means the request never completed: DNS, connect, timeout,
// or an unreadable response body.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("backend %s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Message is the backend's "message"
// field, which is shown to users verbatim.
type ServerError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %s: %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("backend %s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// IsStatus reports whether err is a ServerError with the given status.
func IsStatus(err error, status int) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Status == status
}

// IsNotFound reports a 404 from the backend.
func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }

// IsUnauthorized reports a 401 or 403 from the backend.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusForbidden)
}

// UserMessage turns a backend error into text suitable for a toast.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *ServerError
	if errors.As(err, &se) {
		if se.Message != "" {
			return se.Message
		}
		if se.Status >= 500 {
			return "The server had a problem handling the request. Please try again."
		}
		return http.StatusText(se.Status)
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return "Could not reach the server. Check your connection and try again."
	}
	return "Something went wrong. Please try again."
}
