package screens

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/eventdash/internal/app/system/collection"
)

type kindRec struct{ id, kind string }

func (k kindRec) RecordID() string { return k.id }
func (k kindRec) FieldValue(name string) (any, bool) {
	if name == "kind" {
		return k.kind, true
	}
	return nil, false
}

var kindQuery = Query{Filters: map[string]string{"type": "kind"}, Group: "group", GroupDefault: true}

func kindState(n int) *collection.State[kindRec] {
	st := collection.New(collection.Options[kindRec]{PageSize: 2})
	items := make([]kindRec, n)
	for i := range items {
		k := "a"
		if i%2 == 1 {
			k = "b"
		}
		items[i] = kindRec{id: string(rune('0' + i)), kind: k}
	}
	st.Resolve(st.BeginFetch(), items, nil)
	return st
}

func TestApplyQuery_MountReplacesEverything(t *testing.T) {
	st := kindState(8)
	st.SetFilter("kind", "b")
	st.SetGroupBy(false)

	ApplyQuery(st, httptest.NewRequest("GET", "/events?page=2", nil), kindQuery)

	if st.Filters().Get("kind") != "" {
		t.Errorf("mount without type should clear the filter, got %q", st.Filters().Get("kind"))
	}
	if v := st.View(); !v.GroupBy {
		t.Error("mount without group should use the default")
	}
	if st.Page() != 2 {
		t.Errorf("page = %d, want 2", st.Page())
	}
}

func TestApplyQuery_PartialOnlyTouchesGivenParams(t *testing.T) {
	st := kindState(8)
	ApplyQuery(st, httptest.NewRequest("GET", "/events?type=a&group=off", nil), kindQuery)

	req := httptest.NewRequest("GET", "/events/table?page=2", nil)
	req.Header.Set("HX-Request", "true")
	ApplyQuery(st, req, kindQuery)

	if st.Filters().Get("kind") != "a" {
		t.Errorf("partial page change must keep the filter, got %q", st.Filters().Get("kind"))
	}
	if st.View().GroupBy {
		t.Error("partial page change must keep grouping off")
	}
	if st.Page() != 2 {
		t.Errorf("page = %d, want 2", st.Page())
	}

	req = httptest.NewRequest("GET", "/events/table?type=b", nil)
	req.Header.Set("HX-Request", "true")
	ApplyQuery(st, req, kindQuery)
	if st.Page() != 1 {
		t.Errorf("filter change should reset page, got %d", st.Page())
	}
}

func TestApplyQuery_ResumeKeepsView(t *testing.T) {
	st := kindState(8)
	ApplyQuery(st, httptest.NewRequest("GET", "/events?type=a&group=off&page=2", nil), kindQuery)

	ApplyQuery(st, httptest.NewRequest("GET", Resume("/events"), nil), kindQuery)

	if st.Filters().Get("kind") != "a" {
		t.Errorf("resume must keep the filter, got %q", st.Filters().Get("kind"))
	}
	if st.View().GroupBy {
		t.Error("resume must keep grouping off")
	}
	if st.Page() != 2 {
		t.Errorf("page = %d, want 2", st.Page())
	}
}

func TestParseToggle(t *testing.T) {
	for v, want := range map[string]bool{"on": true, "1": true, "off": false, "0": false, "False": false, "": true} {
		if got := parseToggle(v); got != want {
			t.Errorf("parseToggle(%q) = %v", v, got)
		}
	}
}
