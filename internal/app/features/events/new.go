// internal/app/features/events/new.go
package events

import (
	"errors"
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/formutil"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/events/new, POST /dashboard/events                          |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeNew renders an empty form with organization and department taken
// from the signed-in user.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Action: "/dashboard/events", Types: h.typeOptions(r.Context())}
	formutil.SetBase(&data.Base, r, "Create Event", listPath)
	if u, ok := auth.CurrentUser(r); ok {
		data.Organization = u.Organization
		data.Department = u.Department
	}
	templates.Render(w, r, "event_form", data)
}

// HandleCreate validates, submits the multipart create, and returns to the
// list. The list re-fetches on its next mount.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	sub, err := h.parseSubmission(w, r)
	if err != nil {
		h.rerenderParseError(w, r, err, formData{Action: "/dashboard/events"}, "Create Event")
		return
	}
	defer sub.close()

	data := formData{Action: "/dashboard/events"}
	data.fill(sub.input)

	res, in := h.validate(sub, true)
	if res.HasErrors() {
		h.rerender(w, r, data, "Create Event", func(b *formutil.Base) { b.SetValidation(res) })
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "create event")
	defer cancel()

	created, err := h.API.CreateEvent(ctx, auth.Credentials(r), in)
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "create event failed", err, listPath)
			return
		}
		h.Log.Warn("create event failed", zap.Error(err))
		h.rerender(w, r, data, "Create Event", func(b *formutil.Base) { b.SetError(backend.UserMessage(err)) })
		return
	}

	h.Log.Info("event created", zap.String("event_id", created.ID), zap.String("name", in.Name))
	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Event created successfully.")
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

// rerender shows the form again with the submitted values.
func (h *Handler) rerender(w http.ResponseWriter, r *http.Request, data formData, title string, setErr func(*formutil.Base)) {
	formutil.SetBase(&data.Base, r, title, listPath)
	data.Types = h.typeOptions(r.Context())
	setErr(&data.Base)
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "event_form", data)
}

func (h *Handler) rerenderParseError(w http.ResponseWriter, r *http.Request, err error, data formData, title string) {
	msg := "The form could not be read."
	if errors.Is(err, errTooLarge) {
		msg = "The upload is too large."
	}
	h.Log.Warn("parse event form failed", zap.Error(err))
	h.rerender(w, r, data, title, func(b *formutil.Base) { b.SetError(msg) })
}
