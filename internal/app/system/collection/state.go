// internal/app/system/collection/state.go
package collection

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dalemusser/eventdash/internal/app/system/paging"
)

// ErrStale is returned by Fetch when a newer fetch was issued before this
// one resolved. The response has been discarded.
var ErrStale = errors.New("collection: stale response discarded")

// Status is the fetch state of a collection.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "idle"
}

// Ticket identifies one fetch. Tickets increase monotonically per State.
type Ticket uint64

// Options configures a State. Zero values fall back to the paging defaults,
// UTC and server order.
type Options[T Record] struct {
	PageSize   int
	MaxButtons int
	Location   *time.Location

	// GroupKey selects the bucket for a record when grouping is on.
	GroupKey func(T) string
	// Compare orders filtered records; nil keeps server order.
	Compare func(a, b T) int

	Filters Filters
	GroupBy bool
}

// State is the per-screen collection: the last fetched records plus the
// active filters, grouping flag and page. It is safe for concurrent use.
type State[T Record] struct {
	mu sync.Mutex

	opts    Options[T]
	all     []T
	filters Filters
	groupBy bool
	page    int

	status   Status
	err      error
	issued   Ticket
	loadedAt time.Time
}

// New creates an empty State on page 1.
func New[T Record](opts Options[T]) *State[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = paging.PageSize
	}
	if opts.MaxButtons <= 0 {
		opts.MaxButtons = paging.MaxVisibleButtons
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	f := opts.Filters.Clone()
	return &State[T]{
		opts:    opts,
		filters: f,
		groupBy: opts.GroupBy,
		page:    1,
	}
}

// BeginFetch issues a new ticket and moves the state to Loading. Any ticket
// issued earlier becomes stale.
func (s *State[T]) BeginFetch() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.status = Loading
	return s.issued
}

// Resolve applies the outcome of the fetch identified by t. A stale ticket is
// ignored and Resolve returns false. On error the previous records are kept.
// On success they are replaced wholesale; filters are untouched and the page
// is clamped to the new total.
func (s *State[T]) Resolve(t Ticket, items []T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.issued {
		return false
	}
	if err != nil {
		s.status = Failed
		s.err = err
		return true
	}
	s.all = slices.Clone(items)
	s.status = Ready
	s.err = nil
	s.loadedAt = time.Now()
	s.clampLocked()
	return true
}

// Fetch runs fn and resolves its result. It returns fn's error, or ErrStale
// when a newer fetch superseded this one.
func (s *State[T]) Fetch(ctx context.Context, fn func(context.Context) ([]T, error)) error {
	t := s.BeginFetch()
	items, err := fn(ctx)
	if !s.Resolve(t, items, err) {
		return ErrStale
	}
	return err
}

// Loaded reports whether at least one fetch has succeeded.
func (s *State[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loadedAt.IsZero()
}

// Status returns the current fetch status and the last error.
func (s *State[T]) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.err
}

// All returns a copy of the fetched records.
func (s *State[T]) All() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.all)
}

// Filters returns a copy of the filters.
func (s *State[T]) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

// SetFilter sets one filter; an empty value clears it. A change resets the
// page to 1.
func (s *State[T]) SetFilter(field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.filters.Clone()
	next[field] = value
	s.applyFiltersLocked(next)
}

// SetFilters replaces every filter. A change resets the page to 1.
func (s *State[T]) SetFilters(f Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyFiltersLocked(f.Clone())
}

func (s *State[T]) applyFiltersLocked(next Filters) {
	if !s.filters.Equal(next) {
		s.page = 1
	}
	s.filters = next
}

// SetGroupBy turns grouping on or off. Paging is unaffected.
func (s *State[T]) SetGroupBy(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupBy = on
}

// Paginate moves to page n, clamped into [1, totalPages], and returns the
// committed page.
func (s *State[T]) Paginate(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paginateLocked(n)
}

// Prev moves one page back. It is a no-op on the first page.
func (s *State[T]) Prev() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paginateLocked(s.page - 1)
}

// Next moves one page forward. It is a no-op on the last page.
func (s *State[T]) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paginateLocked(s.page + 1)
}

// Page returns the current page.
func (s *State[T]) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *State[T]) paginateLocked(n int) int {
	s.page = paging.Clamp(n, s.totalPagesLocked())
	return s.page
}

// Remove deletes the first record with id and reports whether one was found.
func (s *State[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.all, func(r T) bool { return r.RecordID() == id })
	if i < 0 {
		return false
	}
	s.all = slices.Delete(slices.Clone(s.all), i, i+1)
	s.clampLocked()
	return true
}

// Patch replaces the record with id by fn(record) and reports whether one
// was found.
func (s *State[T]) Patch(id string, fn func(T) T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.all, func(r T) bool { return r.RecordID() == id })
	if i < 0 {
		return false
	}
	next := slices.Clone(s.all)
	next[i] = fn(next[i])
	s.all = next
	return true
}

// Append adds records to the end of the collection.
func (s *State[T]) Append(items ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append(slices.Clone(s.all), items...)
}

// Distinct returns the distinct values of field across every fetched record.
func (s *State[T]) Distinct(field string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Distinct(s.all, field, s.opts.Location)
}

func (s *State[T]) filteredLocked() []T {
	return Sorted(Filter(s.all, s.filters, s.opts.Location), s.opts.Compare)
}

func (s *State[T]) totalPagesLocked() int {
	return paging.TotalPages(len(Filter(s.all, s.filters, s.opts.Location)), s.opts.PageSize)
}

func (s *State[T]) clampLocked() {
	s.page = paging.Clamp(s.page, s.totalPagesLocked())
}

// View is a derived snapshot of a State, ready to render.
type View[T any] struct {
	Status   Status
	Err      error
	Filters  Filters
	GroupBy  bool
	Total    int
	Filtered []T
	Groups   []Group[T]
	Items    []T
	Pager    paging.Pager
}

// Empty reports whether there is nothing to show after filtering.
func (v View[T]) Empty() bool { return len(v.Filtered) == 0 }

// Loading reports whether a fetch is in flight.
func (v View[T]) Loading() bool { return v.Status == Loading }

// View recomputes the filtered, grouped and paged projections.
func (s *State[T]) View() View[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.filteredLocked()
	v := View[T]{
		Status:   s.status,
		Err:      s.err,
		Filters:  s.filters.Clone(),
		GroupBy:  s.groupBy,
		Total:    len(s.all),
		Filtered: filtered,
		Pager:    paging.NewPager(s.page, s.opts.PageSize, s.opts.MaxButtons, len(filtered)),
		Items:    paging.Slice(filtered, s.page, s.opts.PageSize),
	}
	if s.groupBy && s.opts.GroupKey != nil {
		v.Groups = GroupBy(filtered, s.opts.GroupKey)
	}
	return v
}
