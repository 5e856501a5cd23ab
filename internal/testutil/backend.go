package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// APIPrefix is where the fake backend serves its routes.
const APIPrefix = "/api/v1"

// Request is one call the fake backend received.
type Request struct {
	Method        string
	Path          string // relative to APIPrefix, e.g. "/events/adminevents"
	Query         string
	Authorization string
	ContentType   string
	Body          []byte
}

// DecodeJSON unmarshals the request body into v.
func (r Request) DecodeJSON(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode %s %s body: %v", r.Method, r.Path, err)
	}
}

// Backend is an httptest server standing in for the event platform API.
// Unregistered routes answer 404 with a backend-style message.
type Backend struct {
	Server *httptest.Server

	router chi.Router
	mu     sync.Mutex
	reqs   []Request
}

// NewBackend starts a fake backend that is closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{router: chi.NewRouter()}
	b.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, map[string]string{"message": "route not found"})
	})

	root := chi.NewRouter()
	root.Use(b.record)
	root.Mount(APIPrefix, b.router)
	b.Server = httptest.NewServer(root)
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		b.mu.Lock()
		b.reqs = append(b.reqs, Request{
			Method:        r.Method,
			Path:          strings.TrimPrefix(r.URL.Path, APIPrefix),
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// Handle registers h for method and a chi pattern relative to APIPrefix.
func (b *Backend) Handle(method, pattern string, h http.HandlerFunc) {
	b.router.MethodFunc(method, pattern, h)
}

// JSON registers a canned JSON response.
func (b *Backend) JSON(method, pattern string, status int, body any) {
	b.Handle(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Fail registers an error response carrying a backend message.
func (b *Backend) Fail(method, pattern string, status int, message string) {
	b.JSON(method, pattern, status, map[string]string{"message": message})
}

// URL is the base URL a backend.Client should use.
func (b *Backend) URL() string { return b.Server.URL + APIPrefix + "/" }

// Client returns a backend.Client pointed at the fake.
func (b *Backend) Client(t *testing.T) *backend.Client {
	t.Helper()
	c, err := backend.New(b.URL(), backend.WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	return c
}

// Requests returns a copy of every recorded request.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.reqs...)
}

// Count returns how many times method+path was called.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request for method+path.
func (b *Backend) Last(method, path string) (Request, bool) {
	reqs := b.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return Request{}, false
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
