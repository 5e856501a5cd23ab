// internal/app/system/collection/shape.go
package collection

import (
	"slices"
	"time"
)

// UnknownGroup is the bucket for records without a group key.
const UnknownGroup = "Unknown"

// Group is one bucket of a grouped collection.
type Group[T any] struct {
	Key   string
	Items []T
}

// Filter returns the records of all that satisfy every active filter, in
// their original order. The input is never modified.
func Filter[T Record](all []T, filters Filters, loc *time.Location) []T {
	active := filters.Active()
	out := make([]T, 0, len(all))
	for _, rec := range all {
		if Matches(rec, active, loc) {
			out = append(out, rec)
		}
	}
	return out
}

// GroupBy partitions items by key. Buckets appear in first-seen order and
// items keep their input order. An empty key lands in UnknownGroup.
func GroupBy[T any](items []T, key func(T) string) []Group[T] {
	var groups []Group[T]
	index := make(map[string]int)
	for _, it := range items {
		k := key(it)
		if k == "" {
			k = UnknownGroup
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// ByField returns a group key selector over a record field. Time fields
// group by year-month in loc.
func ByField[T Record](name string, loc *time.Location) func(T) string {
	return func(rec T) string {
		v, ok := rec.FieldValue(name)
		if !ok {
			return ""
		}
		if t, isTime := v.(time.Time); isTime {
			if t.IsZero() {
				return ""
			}
			return t.In(orUTC(loc)).Format(monthLayout)
		}
		s, _ := FieldText(v, loc)
		return s
	}
}

// Distinct returns the distinct non-empty values of field across all, in
// first-seen order. Callers pass the unfiltered collection so narrowing a
// filter does not remove options from a selector.
func Distinct[T Record](all []T, field string, loc *time.Location) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range all {
		v, ok := rec.FieldValue(field)
		if !ok {
			continue
		}
		s, ok := FieldText(v, loc)
		if !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Sorted returns a stably sorted copy of items. A nil cmp keeps input order.
func Sorted[T any](items []T, cmp func(a, b T) int) []T {
	out := slices.Clone(items)
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}
