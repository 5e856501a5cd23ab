// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in paged lists.
const PageSize = 6

// MaxVisibleButtons is the default width of the page-number window.
const MaxVisibleButtons = 5

// TotalPages returns ceil(n/size), or 0 when there is nothing to page.
// A non-positive size is treated as 1.
func TotalPages(n, size int) int {
	if n <= 0 {
		return 0
	}
	if size <= 0 {
		size = 1
	}
	return (n + size - 1) / size
}

// Clamp bounds page into [1, total]. With no pages the result is 1.
func Clamp(page, total int) int {
	if total <= 0 || page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Window returns the page numbers to render as buttons: at most max
// consecutive pages, centered on current except at either end.
// It returns nil when total is 0.
func Window(current, total, max int) []int {
	if total <= 0 {
		return nil
	}
	if max <= 0 {
		max = MaxVisibleButtons
	}
	current = Clamp(current, total)

	start := current - max/2
	if start < 1 {
		start = 1
	}
	end := start + max - 1
	if end > total {
		end = total
	}
	start = end - max + 1
	if start < 1 {
		start = 1
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Bounds returns the half-open [lo, hi) index range of page within n items.
// page is clamped first.
func Bounds(page, size, n int) (lo, hi int) {
	if n <= 0 {
		return 0, 0
	}
	if size <= 0 {
		size = 1
	}
	page = Clamp(page, TotalPages(n, size))
	lo = (page - 1) * size
	hi = lo + size
	if hi > n {
		hi = n
	}
	return lo, hi
}

// Slice returns the items of page. The result shares backing storage with items.
func Slice[T any](items []T, page, size int) []T {
	lo, hi := Bounds(page, size, len(items))
	return items[lo:hi]
}

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Range holds computed display range values for a paginated list.
type Range struct {
	Start int // 1-based start index (0 if no results)
	End   int // 1-based end index (0 if no results)
	Total int
}

// ComputeRange calculates the "Showing X–Y of N" values for page.
func ComputeRange(page, size, n int) Range {
	lo, hi := Bounds(page, size, n)
	if hi == 0 {
		return Range{}
	}
	return Range{Start: lo + 1, End: hi, Total: n}
}

// Pager is the view model for a page-number navigation bar.
type Pager struct {
	Page       int
	PageSize   int
	TotalPages int
	Pages      []int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
	Range      Range
}

// NewPager builds the navigation for page over n items.
// Prev/next at the boundaries point back at the clamped page, so following
// them is a no-op.
func NewPager(page, size, maxButtons, n int) Pager {
	total := TotalPages(n, size)
	page = Clamp(page, total)
	p := Pager{
		Page:       page,
		PageSize:   size,
		TotalPages: total,
		Pages:      Window(page, total, maxButtons),
		HasPrev:    page > 1,
		HasNext:    page < total,
		PrevPage:   Clamp(page-1, total),
		NextPage:   Clamp(page+1, total),
		Range:      ComputeRange(page, size, n),
	}
	return p
}

// Show reports whether a pager should be rendered at all.
func (p Pager) Show() bool { return p.TotalPages > 1 }
