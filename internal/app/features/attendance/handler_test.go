package attendance

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/eventdash/internal/testutil"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

func ongoingEvent() models.Event {
	return models.Event{
		ID: "e1", Name: "Jazz Night",
		DateStart: testNow.Add(-2 * time.Hour),
		DateEnd:   testNow.Add(2 * time.Hour),
	}
}

func sampleRoster() []models.Attendee {
	return []models.Attendee{
		{UserID: "u1", FirstName: "Ada", LastName: "Lovelace", HasAttended: true},
		{UserID: "u2", FirstName: "Alan", LastName: "Turing"},
		{UserID: "u3", FirstName: "Grace", LastName: "Hopper"},
	}
}

func newTestHandler(t *testing.T, be *testutil.Backend) *Handler {
	t.Helper()
	logger := zap.NewNop()
	settings := screens.DefaultSettings()
	settings.PageSize = 2
	h := NewHandler(be.Client(t), testutil.NewRegistry(), testutil.NewSessionManager(t),
		uierrors.NewErrorLogger(logger), settings, logger)
	h.now = func() time.Time { return testNow }
	return h
}

func stubBackend(t *testing.T) *testutil.Backend {
	t.Helper()
	be := testutil.NewBackend(t)
	be.JSON(http.MethodGet, "/events/events", http.StatusOK, map[string]any{
		"success": true, "data": []models.Event{ongoingEvent()},
	})
	be.JSON(http.MethodGet, "/events/e1", http.StatusOK, ongoingEvent())
	be.JSON(http.MethodGet, "/attendance/getUsersByEvent/e1", http.StatusOK, sampleRoster())
	return be
}

func mountRoll(t *testing.T, h *Handler, user testutil.TestUser) *roll {
	t.Helper()
	testutil.Serve(t, h.ServeAttendance, testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/attendance?event=e1", user))
	rl, ok := h.mountedRoll(user.SessionID)
	if !ok {
		t.Fatal("roster not mounted")
	}
	return rl
}

func TestServeAttendance_MountLoadsDropdownAndRoster(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	rl := mountRoll(t, h, admin)

	if n := be.Count(http.MethodGet, "/events/events"); n != 1 {
		t.Errorf("events/events calls = %d, want 1", n)
	}
	if n := be.Count(http.MethodGet, "/attendance/getUsersByEvent/e1"); n != 1 {
		t.Errorf("roster calls = %d, want 1", n)
	}
	id, ev := rl.current()
	if id != "e1" || ev.Name != "Jazz Night" {
		t.Errorf("current = %q %q", id, ev.Name)
	}

	data := h.buildPage(viewdata.BaseVM{}, nil, rl, "e1")
	if data.Status != models.StatusOngoing {
		t.Errorf("status = %q, want ongoing", data.Status)
	}
	if data.Total != 3 || len(data.Rows) != 2 {
		t.Errorf("total=%d rows=%d, want 3 and a page of 2", data.Total, len(data.Rows))
	}
	if !data.CanApprove {
		t.Error("ongoing event with unattended users should allow approval")
	}
	if !strings.HasPrefix(data.Pager.BaseURL, "/dashboard/attendance/roster?") {
		t.Errorf("pager base = %q", data.Pager.BaseURL)
	}
}

func TestServeAttendance_NoEventDropsRoster(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()
	mountRoll(t, h, admin)

	testutil.Serve(t, h.ServeAttendance, testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/attendance", admin))

	if _, ok := h.mountedRoll(admin.SessionID); ok {
		t.Error("roster should be dropped when no event is selected")
	}
}

func TestServeRoster_FiltersWithoutRefetch(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()
	rl := mountRoll(t, h, admin)

	req := testutil.HTMX(testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/attendance/roster?event=e1&attended=false", admin))
	testutil.Serve(t, h.ServeRoster, req)

	if n := be.Count(http.MethodGet, "/attendance/getUsersByEvent/e1"); n != 1 {
		t.Errorf("partial refetched roster: calls = %d", n)
	}
	v := rl.roster.View()
	if len(v.Filtered) != 2 {
		t.Fatalf("filtered = %d, want 2 unattended", len(v.Filtered))
	}
	for _, a := range v.Filtered {
		if a.HasAttended {
			t.Errorf("%s should be filtered out", a.UserID)
		}
	}
}

func TestServeRoster_DifferentEventFallsBackToLoad(t *testing.T) {
	be := stubBackend(t)
	be.JSON(http.MethodGet, "/events/e2", http.StatusOK, models.Event{ID: "e2", Name: "Other"})
	be.JSON(http.MethodGet, "/attendance/getUsersByEvent/e2", http.StatusOK, []models.Attendee{})
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()
	mountRoll(t, h, admin)

	req := testutil.HTMX(testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/attendance/roster?event=e2", admin))
	testutil.Serve(t, h.ServeRoster, req)

	if n := be.Count(http.MethodGet, "/attendance/getUsersByEvent/e2"); n != 1 {
		t.Errorf("e2 roster calls = %d, want 1", n)
	}
	rl, _ := h.mountedRoll(admin.SessionID)
	if id, _ := rl.current(); id != "e2" {
		t.Errorf("current event = %q, want e2", id)
	}
}

func TestHandleApprove_SendsSelectionAndRefetches(t *testing.T) {
	be := stubBackend(t)
	be.JSON(http.MethodPut, "/attendance/updateUsersAttendance/e1", http.StatusOK, map[string]any{"success": true})
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()
	mountRoll(t, h, admin)

	form := url.Values{"attendee": {"u2", "u3"}}
	req := testutil.WithChiURLParam(testutil.NewFormRequest("/dashboard/attendance/e1/approve", form, admin), "id", "e1")
	rec := testutil.Serve(t, h.HandleApprove, req)

	rec.AssertRedirect(t, "/dashboard/attendance?event=e1")
	put, ok := be.Last(http.MethodPut, "/attendance/updateUsersAttendance/e1")
	if !ok {
		t.Fatal("approve not sent")
	}
	var body struct {
		Attendees []models.AttendanceUpdate `json:"attendees"`
	}
	put.DecodeJSON(t, &body)
	if len(body.Attendees) != 2 || body.Attendees[0].UserID != "u2" || !body.Attendees[1].HasAttended {
		t.Errorf("body = %+v", body.Attendees)
	}
	if n := be.Count(http.MethodGet, "/attendance/getUsersByEvent/e1"); n != 2 {
		t.Errorf("roster calls = %d, want a re-fetch after approve", n)
	}
}

func TestHandleApprove_EmptySelectionRejected(t *testing.T) {
	be := stubBackend(t)
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	req := testutil.HTMX(testutil.WithChiURLParam(
		testutil.NewFormRequest("/dashboard/attendance/e1/approve", url.Values{}, admin), "id", "e1"))
	rec := testutil.Serve(t, h.HandleApprove, req)

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "at least one attendee") {
		t.Errorf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}
	if n := be.Count(http.MethodPut, "/attendance/updateUsersAttendance/e1"); n != 0 {
		t.Errorf("backend called %d times for an empty selection", n)
	}
}

func TestHandleApprove_BackendFailureKeepsRoster(t *testing.T) {
	be := stubBackend(t)
	be.Fail(http.MethodPut, "/attendance/updateUsersAttendance/e1", http.StatusInternalServerError, "boom")
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()
	mountRoll(t, h, admin)

	req := testutil.HTMX(testutil.WithChiURLParam(
		testutil.NewFormRequest("/dashboard/attendance/e1/approve", url.Values{"attendee": {"u2"}}, admin), "id", "e1"))
	rec := testutil.Serve(t, h.HandleApprove, req)

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if n := be.Count(http.MethodGet, "/attendance/getUsersByEvent/e1"); n != 1 {
		t.Errorf("roster refetched after failed approve: calls = %d", n)
	}
}

func TestServeChart_FetchesAllThree(t *testing.T) {
	be := stubBackend(t)
	be.JSON(http.MethodGet, "/attendance/hasAttendedCounts/e1", http.StatusOK, models.AttendanceCounts{Present: 1, Absent: 2})
	h := newTestHandler(t, be)
	admin := testutil.AdminUser()

	req := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/events/e1/attendance", admin), "id", "e1")
	testutil.Serve(t, h.ServeChart, req)

	for _, p := range []string{"/attendance/hasAttendedCounts/e1", "/events/e1", "/attendance/getUsersByEvent/e1"} {
		if n := be.Count(http.MethodGet, p); n != 1 {
			t.Errorf("%s calls = %d, want 1", p, n)
		}
	}
}

func TestToRow_StatusColumns(t *testing.T) {
	tests := []struct {
		name       string
		status     models.EventStatus
		attended   bool
		selectable bool
		absent     bool
	}{
		{"ongoing unattended", models.StatusOngoing, false, true, false},
		{"ongoing attended", models.StatusOngoing, true, false, false},
		{"done unattended", models.StatusDone, false, false, true},
		{"done attended", models.StatusDone, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := toRow(models.Attendee{UserID: "u", FirstName: "A", HasAttended: tt.attended}, tt.status)
			if row.Selectable != tt.selectable || row.Absent != tt.absent || row.Attended != tt.attended {
				t.Errorf("row = %+v", row)
			}
		})
	}
}
