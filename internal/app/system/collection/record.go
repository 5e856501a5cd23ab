// internal/app/system/collection/record.go
package collection

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Record is one item of a backend collection (event, attendee, rating, question).
type Record interface {
	// RecordID returns an opaque id that is stable across re-fetches.
	RecordID() string
	// FieldValue returns the named filter field. Supported values are
	// string, bool, integer, float, time.Time and fmt.Stringer.
	FieldValue(name string) (any, bool)
}

// Filters maps a field name to the selected value. An empty value means the
// filter is not active.
type Filters map[string]string

// Active returns only the entries with a non-empty value.
func (f Filters) Active() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	return out
}

// Clone returns a copy of f.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Equal reports whether f and g select the same records.
func (f Filters) Equal(g Filters) bool {
	a, b := f.Active(), g.Active()
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// Get returns the value for field, or "".
func (f Filters) Get(field string) string { return f[field] }

// Matches reports whether rec satisfies every active filter. Time fields
// compare by calendar date in loc; a filter value may be a date
// (2006-01-02) or an RFC 3339 timestamp.
func Matches(rec Record, filters Filters, loc *time.Location) bool {
	for field, want := range filters {
		want = strings.TrimSpace(want)
		if want == "" {
			continue
		}
		v, ok := rec.FieldValue(field)
		if !ok {
			return false
		}
		if t, isTime := v.(time.Time); isTime {
			if !sameDate(t, want, loc) {
				return false
			}
			continue
		}
		if got, _ := FieldText(v, loc); got != want {
			return false
		}
	}
	return true
}

func sameDate(t time.Time, want string, loc *time.Location) bool {
	if t.IsZero() {
		return false
	}
	loc = orUTC(loc)
	day := t.In(loc).Format(dateLayout)
	if d, err := time.ParseInLocation(dateLayout, want, loc); err == nil {
		return d.Format(dateLayout) == day
	}
	if ts, err := time.Parse(time.RFC3339, want); err == nil {
		return ts.In(loc).Format(dateLayout) == day
	}
	return false
}

// FieldText renders a field value as comparable text. Times render as their
// calendar date in loc. The bool result is false for nil or a zero time.
func FieldText(v any, loc *time.Location) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, x != ""
	case time.Time:
		if x.IsZero() {
			return "", false
		}
		return x.In(orUTC(loc)).Format(dateLayout), true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case fmt.Stringer:
		s := x.String()
		return s, s != ""
	}
	s := fmt.Sprint(v)
	return s, s != ""
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
