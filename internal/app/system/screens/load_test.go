package screens

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/eventdash/internal/app/system/collection"
)

type rec struct{ id string }

func (r rec) RecordID() string {
	return r.id
}

func (r rec) FieldValue(string) (any, bool) {
	return nil, false
}

func newRecState() *collection.State[rec] {
	return collection.New(collection.Options[rec]{})
}

func TestLoad_MountFetchesPartialReuses(t *testing.T) {
	reg := NewRegistry(10, time.Minute, nil)
	calls := 0
	fetch := func(context.Context) ([]rec, error) {
		calls++
		return []rec{{"a"}, {"b"}}, nil
	}

	st, err := Load(httptest.NewRequest("GET", "/dashboard/events", nil), reg, "s1", Events, newRecState, fetch)
	if err != nil || calls != 1 || len(st.All()) != 2 {
		t.Fatalf("mount: err=%v calls=%d", err, calls)
	}

	partial := httptest.NewRequest("GET", "/dashboard/events/table?page=2", nil)
	partial.Header.Set("HX-Request", "true")
	if _, err := Load(partial, reg, "s1", Events, newRecState, fetch); err != nil || calls != 1 {
		t.Errorf("partial should reuse: err=%v calls=%d", err, calls)
	}

	if _, err := Load(httptest.NewRequest("GET", "/dashboard/events", nil), reg, "s1", Events, newRecState, fetch); err != nil || calls != 2 {
		t.Errorf("remount should fetch again: calls=%d", calls)
	}
}

func TestLoad_ResumedPageReusesState(t *testing.T) {
	reg := NewRegistry(10, time.Minute, nil)
	calls := 0
	fetch := func(context.Context) ([]rec, error) {
		calls++
		return []rec{{"a"}, {"b"}}, nil
	}

	st, _ := Load(httptest.NewRequest("GET", "/dashboard/events", nil), reg, "s1", Events, newRecState, fetch)
	st.Remove("a")

	resumed, err := Load(httptest.NewRequest("GET", Resume("/dashboard/events"), nil), reg, "s1", Events, newRecState, fetch)
	if err != nil || calls != 1 {
		t.Fatalf("resume should not fetch: err=%v calls=%d", err, calls)
	}
	if got := len(resumed.All()); got != 1 {
		t.Errorf("records after resume = %d, want 1", got)
	}

	if _, err := Load(httptest.NewRequest("GET", Resume("/dashboard/events"), nil), reg, "s2", Events, newRecState, fetch); err != nil || calls != 2 {
		t.Errorf("resume without state should fetch: calls=%d", calls)
	}
}

func TestLoad_PartialWithoutStateFetches(t *testing.T) {
	reg := NewRegistry(10, time.Minute, nil)
	calls := 0
	partial := httptest.NewRequest("GET", "/dashboard/events/table", nil)
	partial.Header.Set("HX-Request", "true")
	_, err := Load(partial, reg, "s1", Events, newRecState, func(context.Context) ([]rec, error) {
		calls++
		return nil, nil
	})
	if err != nil || calls != 1 {
		t.Errorf("expired screen should fetch: err=%v calls=%d", err, calls)
	}
}

func TestLoad_FailureKeepsState(t *testing.T) {
	reg := NewRegistry(10, time.Minute, nil)
	boom := errors.New("boom")
	st, err := Load(httptest.NewRequest("GET", "/", nil), reg, "s1", Events, newRecState, func(context.Context) ([]rec, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if status, _ := st.Status(); status != collection.Failed {
		t.Errorf("status = %v", status)
	}
}

func TestRefetch(t *testing.T) {
	st := newRecState()
	if err := Refetch(context.Background(), st, func(context.Context) ([]rec, error) {
		return []rec{{"x"}}, nil
	}); err != nil || len(st.All()) != 1 {
		t.Errorf("Refetch err=%v all=%v", err, st.All())
	}
}
