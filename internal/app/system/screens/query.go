// internal/app/system/screens/query.go
package screens

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/paging"
)

// ResumeParam marks a full page load that returns to a mounted screen after
// a local mutation. The screen keeps its records, filters and page.
const ResumeParam = "resume"

// Resume adds ResumeParam to a local URL.
func Resume(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set(ResumeParam, "1")
	u.RawQuery = q.Encode()
	return u.String()
}

// Query maps a screen's URL parameters onto its collection state.
type Query struct {
	// Filters maps query parameter -> filter field.
	Filters map[string]string
	// Group is the grouping toggle parameter; empty when the screen has none.
	Group        string
	GroupDefault bool
}

// ApplyQuery copies URL parameters into st. A mount takes the URL as the
// whole truth: absent filters are cleared, grouping falls back to its
// default and the page to 1. A partial request changes only the parameters
// it carries. Call it after the state is loaded so the page clamps against
// real data.
func ApplyQuery[T collection.Record](st *collection.State[T], r *http.Request, q Query) {
	mount := IsMount(r)
	vals := r.URL.Query()

	next := st.Filters()
	if mount {
		next = collection.Filters{}
	}
	for param, field := range q.Filters {
		if mount || vals.Has(param) {
			next[field] = strings.TrimSpace(vals.Get(param))
		}
	}
	st.SetFilters(next)

	if q.Group != "" {
		switch {
		case vals.Has(q.Group):
			st.SetGroupBy(parseToggle(vals.Get(q.Group)))
		case mount:
			st.SetGroupBy(q.GroupDefault)
		}
	}

	switch {
	case vals.Has("page"):
		st.Paginate(paging.ParsePage(r))
	case mount:
		st.Paginate(1)
	}
}

func parseToggle(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "off", "0", "false", "no":
		return false
	}
	return true
}
