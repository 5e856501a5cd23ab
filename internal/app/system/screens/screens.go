// internal/app/system/screens/screens.go
//
// Package screens keeps per-browser-session screen state between requests.
// An entry lives while the user keeps interacting with the screen; it is
// discarded after the idle TTL, on logout, or when capacity forces eviction.
package screens

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// Defaults used when the configured values are not positive.
const (
	DefaultCapacity = 2048
	DefaultTTL      = 30 * time.Minute
)

// Screen names used as registry keys.
const (
	Events         = "events"
	Attendance     = "attendance"
	Calendar       = "calendar"
	Questions      = "questions"
	Questionnaire  = "questionnaire"
	Reports        = "reports"
	AttendanceRoll = "attendance-roll"
)

// Registry maps (session id, screen name) to screen state.
type Registry struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, any]
	log *zap.Logger
}

// NewRegistry creates a registry holding at most capacity screens, each
// expiring ttl after its last use.
func NewRegistry(capacity int, ttl time.Duration, log *zap.Logger) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{log: log}
	r.lru = expirable.NewLRU[string, any](capacity, func(key string, _ any) {
		log.Debug("screen state discarded", zap.String("screen", key))
	}, ttl)
	return r
}

func key(sessionID, screen string) string { return sessionID + ":" + screen }

// Obtain returns the state for the session's screen, creating it with create
// when absent or when the stored value has a different type. Every call
// refreshes the entry's idle timer. created reports whether create ran.
func Obtain[T any](r *Registry, sessionID, screen string, create func() T) (v T, created bool) {
	k := key(sessionID, screen)

	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.lru.Get(k); ok {
		if typed, ok := cur.(T); ok {
			r.lru.Add(k, typed)
			return typed, false
		}
	}
	v = create()
	r.lru.Add(k, v)
	return v, true
}

// Peek returns the state if it exists without creating or refreshing it.
func Peek[T any](r *Registry, sessionID, screen string) (T, bool) {
	var zero T
	cur, ok := r.lru.Peek(key(sessionID, screen))
	if !ok {
		return zero, false
	}
	typed, ok := cur.(T)
	return typed, ok
}

// Drop discards one screen of a session.
func (r *Registry) Drop(sessionID, screen string) {
	r.lru.Remove(key(sessionID, screen))
}

// DropSession discards every screen of a session and returns how many were removed.
func (r *Registry) DropSession(sessionID string) int {
	if sessionID == "" {
		return 0
	}
	prefix := sessionID + ":"
	n := 0
	for _, k := range r.lru.Keys() {
		if strings.HasPrefix(k, prefix) && r.lru.Remove(k) {
			n++
		}
	}
	return n
}

// Len returns the number of live screens.
func (r *Registry) Len() int { return r.lru.Len() }

// Purge discards everything.
func (r *Registry) Purge() { r.lru.Purge() }

// IsMount reports whether r is a full page load. A mount (re)creates the
// screen and fetches; HTMX requests and resumed page loads operate on the
// mounted state.
func IsMount(r *http.Request) bool {
	return r.Method == http.MethodGet &&
		r.Header.Get("HX-Request") != "true" &&
		!r.URL.Query().Has(ResumeParam)
}
