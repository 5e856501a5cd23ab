package calendar

import (
	"net/http"
	"testing"
	"time"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/eventdash/internal/testutil"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

func sampleEvents() []models.Event {
	return []models.Event{
		{ID: "past", Name: "Kickoff", DateStart: time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)},
		{ID: "fest", Name: "Festival",
			DateStart: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
			DateEnd:   time.Date(2025, 3, 16, 18, 0, 0, 0, time.UTC)},
		{ID: "apr", Name: "Spring Fair", DateStart: time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)},
	}
}

func newTestHandler(t *testing.T, be *testutil.Backend) *Handler {
	t.Helper()
	logger := zap.NewNop()
	h := NewHandler(be.Client(t), testutil.NewRegistry(), uierrors.NewErrorLogger(logger), screens.DefaultSettings(), logger)
	h.now = func() time.Time { return testNow }
	return h
}

func TestServeCalendar_MountFetchesOnceAndNavigationReuses(t *testing.T) {
	be := testutil.NewBackend(t)
	be.JSON(http.MethodGet, "/events/adminevents", http.StatusOK, sampleEvents())
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	testutil.Serve(t, h.ServeCalendar, testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/calendar", admin))
	req := testutil.HTMX(testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/calendar?month=2025-04", admin))
	testutil.Serve(t, h.ServeCalendar, req)

	if n := be.Count(http.MethodGet, "/events/adminevents"); n != 1 {
		t.Errorf("adminevents calls = %d, want 1", n)
	}
}

func TestBuild_MultiDayEventCoversRange(t *testing.T) {
	h := newTestHandler(t, testutil.NewBackend(t))
	data := h.build(viewdata.BaseVM{}, sampleEvents(), "", "")

	if data.Month != "2025-03" || data.MonthTitle != "March 2025" {
		t.Fatalf("month = %q %q", data.Month, data.MonthTitle)
	}
	covered := map[string]bool{}
	for _, wk := range data.Weeks {
		for _, d := range wk {
			for _, e := range d.Events {
				if e.ID == "fest" {
					covered[d.Key] = true
				}
			}
		}
	}
	for _, k := range []string{"2025-03-14", "2025-03-15", "2025-03-16"} {
		if !covered[k] {
			t.Errorf("festival missing on %s", k)
		}
	}
	if len(covered) != 3 {
		t.Errorf("festival covers %d days, want 3", len(covered))
	}
	if data.Weeks[0][0].Key != "2025-02-24" {
		t.Errorf("grid should start Monday 2025-02-24, got %s", data.Weeks[0][0].Key)
	}
}

func TestBuild_DateSelectsDayAndMonth(t *testing.T) {
	h := newTestHandler(t, testutil.NewBackend(t))
	data := h.build(viewdata.BaseVM{}, sampleEvents(), "2025-01", "2025-04-02")

	if data.Month != "2025-04" {
		t.Errorf("date should pick its month, got %q", data.Month)
	}
	if len(data.SelectedEvents) != 1 || data.SelectedEvents[0].ID != "apr" {
		t.Errorf("selected events = %+v", data.SelectedEvents)
	}
	if data.PrevURL != "/dashboard/calendar?month=2025-03" {
		t.Errorf("prev = %q", data.PrevURL)
	}
}

func TestUpcomingMonths_SkipsPastAndGroups(t *testing.T) {
	groups := upcomingMonths(sampleEvents(), testNow, time.UTC)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].Title != "March 2025" || len(groups[0].Events) != 1 || groups[0].Events[0].ID != "fest" {
		t.Errorf("first group = %+v", groups[0])
	}
	if groups[1].Title != "April 2025" {
		t.Errorf("second group = %q", groups[1].Title)
	}
}
