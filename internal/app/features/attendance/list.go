// internal/app/features/attendance/list.go
package attendance

import (
	"net/http"
	"strings"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/attendance?event=                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeAttendance renders the event picker and, when an event is chosen,
// its roster. A mount re-fetches both the dropdown and the roster.
func (h *Handler) ServeAttendance(w http.ResponseWriter, r *http.Request) {
	sid, sess := auth.SessionID(r), auth.Credentials(r)

	evs, err := screens.Load(r, h.Screens, sid, screens.Attendance, h.newEvents, h.fetchEvents(sess))
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "load attendance events failed", err, basePath)
			return
		}
		h.Log.Warn("load attendance events failed", zap.Error(err))
	}

	eventID := strings.TrimSpace(query.Get(r, "event"))
	var rl *roll
	var rollErr error
	if eventID != "" {
		var created bool
		rl, created = screens.Obtain(h.Screens, sid, screens.AttendanceRoll, h.newRoll)
		cur, _ := rl.current()
		if created || screens.IsMount(r) || cur != eventID || !rl.roster.Loaded() {
			rollErr = h.loadRoll(r.Context(), sess, rl, eventID)
		}
		if backend.IsUnauthorized(rollErr) {
			h.ErrLog.LogBackendError(w, r, "load roster failed", rollErr, basePath)
			return
		}
		if rollErr != nil {
			h.Log.Warn("load roster failed", zap.String("event_id", eventID), zap.Error(rollErr))
		}
		screens.ApplyQuery(rl.roster, r, rosterQuery)
	} else {
		h.Screens.Drop(sid, screens.AttendanceRoll)
	}

	data := h.buildPage(viewdata.NewBaseVM(w, r, "Attendance", "/dashboard/calendar"), evs, rl, eventID)
	if rollErr != nil && data.Error == "" {
		data.Error = backend.UserMessage(rollErr)
	}
	if r.Header.Get("HX-Request") != "" {
		templates.RenderSnippet(w, "attendance_roster", data)
		return
	}
	templates.Render(w, r, "attendance", data)
}

// ServeRoster is the htmx partial for paging and filtering the roster.
// It never re-fetches a roster that is already loaded for the event.
func (h *Handler) ServeRoster(w http.ResponseWriter, r *http.Request) {
	eventID := strings.TrimSpace(query.Get(r, "event"))
	rl, ok := h.mountedRoll(auth.SessionID(r))
	var cur string
	if ok {
		cur, _ = rl.current()
	}
	if !ok || cur != eventID {
		// Nothing mounted for this event; fall back to a full load.
		h.ServeAttendance(w, r)
		return
	}
	screens.ApplyQuery(rl.roster, r, rosterQuery)
	data := h.buildPage(viewdata.NewBaseVM(w, r, "Attendance", "/dashboard/calendar"), nil, rl, eventID)
	templates.RenderSnippet(w, "attendance_roster", data)
}

func (h *Handler) buildPage(base viewdata.BaseVM, evs *eventsState, rl *roll, eventID string) pageData {
	data := pageData{BaseVM: base, EventID: eventID}
	if evs != nil {
		ev := evs.View()
		for _, e := range ev.Filtered {
			data.Events = append(data.Events, eventOption{ID: e.ID, Name: e.Name})
		}
		if ev.Err != nil {
			data.Error = backend.UserMessage(ev.Err)
		}
	}
	if rl == nil || eventID == "" {
		return data
	}

	_, event := rl.current()
	status := models.StatusAt(h.now(), event.DateEnd)
	v := rl.roster.View()

	data.EventName = event.Name
	data.Status = status
	data.Ends = formatEnd(event.DateEnd, h.Settings.Loc())
	data.Attended = v.Filters.Get(models.AttendeeFieldAttended)
	data.Rows = toRows(v.Items, status)
	data.Total = v.Total
	data.Empty = v.Empty()
	for _, row := range data.Rows {
		if row.Selectable {
			data.CanApprove = true
			break
		}
	}
	data.Pager = pagerVM{Pager: v.Pager, BaseURL: rosterURL(eventID, data.Attended), Target: "attendance-roster"}
	if v.Err != nil && data.Error == "" {
		data.Error = backend.UserMessage(v.Err)
	}
	return data
}
