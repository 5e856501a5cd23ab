// internal/app/features/attendance/approve.go
package attendance

import (
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /dashboard/attendance/{id}/approve                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleApprove marks the selected attendees as present. Approval changes
// status on the server, so the roster is re-fetched rather than patched.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	eventID := strings.TrimSpace(chi.URLParam(r, "id"))
	back := selectedURL(eventID)

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse approve form failed", err, "Invalid form data.", back)
		return
	}
	var ids []string
	for _, id := range r.Form["attendee"] {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	switch {
	case eventID == "":
		h.reject(w, r, back, "Select an event first.")
		return
	case len(ids) == 0:
		h.reject(w, r, back, "Select at least one attendee to approve.")
		return
	}

	sess := auth.Credentials(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "approve attendance")
	defer cancel()

	if err := h.API.ApproveAttendance(ctx, sess, eventID, ids); err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "approve attendance failed", err, back)
			return
		}
		h.Log.Warn("approve attendance failed", zap.String("event_id", eventID), zap.Error(err))
		h.reject(w, r, back, backend.UserMessage(err))
		return
	}
	h.Log.Info("attendance approved", zap.String("event_id", eventID), zap.Int("count", len(ids)))

	sid := auth.SessionID(r)
	rl, _ := screens.Obtain(h.Screens, sid, screens.AttendanceRoll, h.newRoll)
	if err := h.loadRoll(r.Context(), sess, rl, eventID); err != nil {
		h.Log.Warn("reload roster after approve failed", zap.String("event_id", eventID), zap.Error(err))
	}

	if r.Header.Get("HX-Request") == "" {
		h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Attendance updated successfully.")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	uierrors.Toast(w, http.StatusOK, auth.FlashSuccess, "Attendance updated successfully.")
	data := h.buildPage(viewdata.NewBaseVM(w, r, "Attendance", "/dashboard/calendar"), nil, rl, eventID)
	templates.RenderSnippet(w, "attendance_roster", data)
}

// reject reports a refused approval without touching the roster.
func (h *Handler) reject(w http.ResponseWriter, r *http.Request, back, msg string) {
	if r.Header.Get("HX-Request") != "" {
		uierrors.Toast(w, http.StatusUnprocessableEntity, auth.FlashError, msg)
		return
	}
	h.SessionMgr.AddFlash(w, r, auth.FlashError, msg)
	http.Redirect(w, r, back, http.StatusSeeOther)
}
