// internal/app/features/questionnaires/view.go
package questionnaires

import (
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/events/{id}/questionnaire                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeView shows the event's questionnaire and whether it accepts
// responses. A missing questionnaire is not an error; the page offers to
// create one.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess := auth.Credentials(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "load questionnaire")
	defer cancel()

	var (
		q  models.Questionnaire
		ev models.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		q, err = h.API.Questionnaire(gctx, sess, id)
		return err
	})
	g.Go(func() error {
		var err error
		if ev, err = h.API.Event(gctx, sess, id); err != nil {
			h.Log.Warn("load event for questionnaire failed", zap.String("event_id", id), zap.Error(err))
		}
		return nil
	})
	err := g.Wait()

	data := viewData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Questionnaire", eventPath(id)),
		EventID:   id,
		EventName: ev.Name,
	}
	switch {
	case err == nil:
		data.Exists = true
		data.Accepting = q.AcceptingResponses
		for _, qq := range q.Questions {
			data.Questions = append(data.Questions, toQuestionVM(qq.Question))
		}
	case backend.IsNotFound(err):
	case backend.IsUnauthorized(err):
		h.ErrLog.LogBackendError(w, r, "load questionnaire failed", err, eventPath(id))
		return
	default:
		h.Log.Warn("load questionnaire failed", zap.String("event_id", id), zap.Error(err))
		data.Error = backend.UserMessage(err)
	}
	templates.Render(w, r, "questionnaire_view", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /dashboard/events/{id}/questionnaire/accepting                         |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleAccepting opens or closes the questionnaire. The form carries the
// desired state so a double submit is harmless.
func (h *Handler) HandleAccepting(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	accepting, err := strconv.ParseBool(r.PostFormValue("accepting"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse accepting flag failed", err, "Invalid form data.", viewPath(id))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "set accepting responses")
	defer cancel()

	if err := h.API.SetAcceptingResponses(ctx, auth.Credentials(r), id, accepting); err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "set accepting responses failed", err, viewPath(id))
			return
		}
		h.Log.Warn("set accepting responses failed", zap.String("event_id", id), zap.Error(err))
		if r.Header.Get("HX-Request") != "" {
			uierrors.Toast(w, http.StatusUnprocessableEntity, auth.FlashError, backend.UserMessage(err))
			return
		}
		h.SessionMgr.AddFlash(w, r, auth.FlashError, backend.UserMessage(err))
		http.Redirect(w, r, viewPath(id), http.StatusSeeOther)
		return
	}

	msg := "Questionnaire closed to responses."
	if accepting {
		msg = "Questionnaire is now accepting responses."
	}
	h.Log.Info("accepting responses changed", zap.String("event_id", id), zap.Bool("accepting", accepting))

	if r.Header.Get("HX-Request") == "" {
		h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, msg)
		http.Redirect(w, r, viewPath(id), http.StatusSeeOther)
		return
	}
	uierrors.Toast(w, http.StatusOK, auth.FlashSuccess, msg)
	data := viewData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Questionnaire", eventPath(id)),
		EventID:   id,
		Exists:    true,
		Accepting: accepting,
	}
	templates.RenderSnippet(w, "questionnaire_accepting", data)
}
