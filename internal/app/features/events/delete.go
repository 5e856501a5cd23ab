// internal/app/features/events/delete.go
package events

import (
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/navigation"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/dashboard/events"

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /dashboard/events/{id}/delete                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeDeleteConfirm asks before deleting.
func (h *Handler) ServeDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ev, err := h.lookup(r.Context(), r, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "load event for delete failed", err, listPath)
		return
	}
	data := deleteData{
		BaseVM: viewdata.NewBaseVM(w, r, "Delete Event", listPath),
		Event:  toRow(ev, h.now(), h.Settings.Loc()),
		Return: navigation.SafeBackURL(r, navigation.EventsBackURL("")),
	}
	if r.Header.Get("HX-Request") != "" {
		data.FromList = true
		templates.RenderSnippet(w, "event_delete_modal", data)
		return
	}
	templates.Render(w, r, "event_delete", data)
}

// HandleDelete deletes on the backend and, on success, removes the event
// from the mounted list without a re-fetch. A delete confirmed from the
// list's modal answers with the re-rendered table; otherwise the browser
// returns to the list it came from, resumed rather than remounted. On
// failure the list is left as it was and the backend's message is shown.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ret := navigation.SafeBackURL(r, navigation.EventsBackURL(id))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete event")
	defer cancel()

	if err := h.API.DeleteEvent(ctx, auth.Credentials(r), id); err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "delete event failed", err, ret)
			return
		}
		h.Log.Warn("delete event failed", zap.String("event_id", id), zap.Error(err))
		h.SessionMgr.AddFlash(w, r, auth.FlashError, backend.UserMessage(err))
		redirect(w, r, resumeList(ret))
		return
	}

	st, mounted := h.mounted(auth.SessionID(r))
	if mounted {
		st.Remove(id)
	}
	h.Log.Info("event deleted", zap.String("event_id", id))

	if mounted && r.Header.Get("HX-Request") != "" && r.FormValue("from") == "list" {
		w.Header().Set("HX-Retarget", "#events-table")
		w.Header().Set("HX-Reswap", "innerHTML")
		data := h.buildList(viewdata.NewBaseVM(w, r, "Events", "/dashboard/calendar"), st)
		uierrors.Toast(w, http.StatusOK, auth.FlashSuccess, "Event deleted successfully.")
		templates.RenderSnippet(w, "events_table", data)
		return
	}

	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Event deleted successfully.")
	redirect(w, r, resumeList(ret))
}

// resumeList marks a return to the event list as a resume so the mounted
// state, with its local changes and filters, is shown as is.
func resumeList(target string) string {
	path, _, _ := strings.Cut(target, "?")
	if path != listPath {
		return target
	}
	return screens.Resume(target)
}

// redirect navigates the browser, using HX-Redirect for htmx requests.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
