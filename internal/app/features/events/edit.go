// internal/app/features/events/edit.go
package events

import (
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/formutil"
	"github.com/dalemusser/eventdash/internal/app/system/inputval"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /dashboard/events/{id}/edit                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func editPath(id string) string { return "/dashboard/events/" + id + "/edit" }

// ServeEdit renders the form filled from the event.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ev, err := h.lookup(r.Context(), r, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "load event for edit failed", err, listPath)
		return
	}

	loc := h.Settings.Loc()
	data := formData{
		Action:       editPath(id),
		IsEdit:       true,
		EventID:      id,
		Types:        h.typeOptions(r.Context()),
		Existing:     ev.Images,
		Name:         ev.Name,
		Description:  ev.Description,
		TypeID:       ev.Type.ID,
		Organization: ev.Organization,
		Department:   ev.Department,
		Location:     ev.Location,
	}
	if !ev.DateStart.IsZero() {
		data.DateStart = ev.DateStart.In(loc).Format(inputval.DateLayout)
		data.TimeStart = ev.DateStart.In(loc).Format(inputval.ClockLayout)
	}
	if !ev.DateEnd.IsZero() {
		data.DateEnd = ev.DateEnd.In(loc).Format(inputval.DateLayout)
		data.TimeEnd = ev.DateEnd.In(loc).Format(inputval.ClockLayout)
	}
	formutil.SetBase(&data.Base, r, "Update Event", listPath)
	templates.Render(w, r, "event_form", data)
}

// HandleEdit submits the update. The mounted list is patched in place with
// the new field values; no re-fetch is needed for a field edit.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	base := formData{Action: editPath(id), IsEdit: true, EventID: id}

	sub, err := h.parseSubmission(w, r)
	if err != nil {
		h.rerenderParseError(w, r, err, base, "Update Event")
		return
	}
	defer sub.close()

	data := base
	data.Existing = sub.existing
	data.fill(sub.input)

	res, in := h.validate(sub, false)
	if res.HasErrors() {
		h.rerender(w, r, data, "Update Event", func(b *formutil.Base) { b.SetValidation(res) })
		return
	}
	in.UserID = currentUserID(r)

	uploads, closeUploads, err := openUploads(sub.files)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "open uploaded image failed", err, "Could not read the uploaded image.", listPath)
		return
	}
	defer closeUploads()
	in.Images = uploads

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "update event")
	defer cancel()

	updated, err := h.API.UpdateEvent(ctx, auth.Credentials(r), id, in)
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "update event failed", err, listPath)
			return
		}
		h.Log.Warn("update event failed", zap.String("event_id", id), zap.Error(err))
		h.rerender(w, r, data, "Update Event", func(b *formutil.Base) { b.SetError(backend.UserMessage(err)) })
		return
	}

	if st, ok := h.mounted(auth.SessionID(r)); ok {
		st.Patch(id, func(e models.Event) models.Event { return applyEdit(e, in, updated) })
	}
	h.Log.Info("event updated", zap.String("event_id", id))
	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Event updated successfully.")
	http.Redirect(w, r, resumeList(listPath), http.StatusSeeOther)
}

// applyEdit folds the submitted fields into the cached record. When the
// backend echoed the event back its image list wins; the type name is kept
// unless the backend supplied a populated type.
func applyEdit(e models.Event, in backend.EventInput, echoed models.Event) models.Event {
	e.Name = in.Name
	e.Description = in.Description
	e.Organization = in.Organization
	e.Department = in.Department
	e.Location = in.Location
	e.DateStart = in.DateStart
	e.DateEnd = in.DateEnd
	if e.Type.ID != in.TypeID {
		e.Type = models.EventTypeRef{ID: in.TypeID}
	}
	if echoed.Type.Name != "" {
		e.Type = echoed.Type
	}
	if len(echoed.Images) > 0 {
		e.Images = echoed.Images
	} else if len(in.Images) == 0 {
		e.Images = in.ExistingImages
	}
	return e
}
