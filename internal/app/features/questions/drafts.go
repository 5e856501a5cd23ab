// internal/app/features/questions/drafts.go
package questions

import (
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/inputval"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// draftInput is the add-draft form.
type draftInput struct {
	Question string `validate:"notblank,max=500" label:"Question"`
	TraitID  string `validate:"notblank" label:"Trait"`
	TypeID   string `validate:"notblank" label:"Event type"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /dashboard/questions/pending                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleAddDraft queues a question locally. Nothing is sent to the backend
// until the drafts are submitted together.
func (h *Handler) HandleAddDraft(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse draft form failed", err, "Invalid form data.", basePath)
		return
	}
	in := draftInput{
		Question: strings.TrimSpace(r.PostFormValue("question")),
		TraitID:  strings.TrimSpace(r.PostFormValue("trait")),
		TypeID:   strings.TrimSpace(r.PostFormValue("type")),
	}

	b, ok := h.obtain(w, r)
	if !ok {
		return
	}
	res := inputval.Validate(in)
	if !res.HasErrors() {
		traits, types := b.catalog()
		if nameOf(traitOptions(traits), in.TraitID) == "" {
			res.Add("TraitID", "Choose a trait from the list.")
		}
		if nameOf(typeOptions(types), in.TypeID) == "" {
			res.Add("TypeID", "Choose an event type from the list.")
		}
	}
	if res.HasErrors() {
		h.renderDrafts(w, r, b, http.StatusUnprocessableEntity, res.First(), in)
		return
	}

	b.mu.Lock()
	b.drafts = append(b.drafts, models.NewQuestion{Question: in.Question, TraitID: in.TraitID, TypeID: in.TypeID})
	b.mu.Unlock()
	h.renderDrafts(w, r, b, http.StatusOK, "", draftInput{})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /dashboard/questions/pending/{n}/remove                                |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleRemoveDraft drops one queued question by position.
func (h *Handler) HandleRemoveDraft(w http.ResponseWriter, r *http.Request) {
	b, ok := h.obtain(w, r)
	if !ok {
		return
	}
	n, err := strconv.Atoi(chi.URLParam(r, "n"))

	b.mu.Lock()
	valid := err == nil && n >= 0 && n < len(b.drafts)
	if valid {
		b.drafts = append(b.drafts[:n:n], b.drafts[n+1:]...)
	}
	b.mu.Unlock()

	if !valid {
		h.renderDrafts(w, r, b, http.StatusUnprocessableEntity, "That draft no longer exists.", draftInput{})
		return
	}
	h.renderDrafts(w, r, b, http.StatusOK, "", draftInput{})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /dashboard/questions/bulk                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleBulkCreate submits every draft in one call. Created questions join
// the bank locally; drafts survive a failure so nothing typed is lost.
func (h *Handler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	b, ok := h.obtain(w, r)
	if !ok {
		return
	}
	drafts := b.pending()
	if len(drafts) == 0 {
		h.renderDrafts(w, r, b, http.StatusUnprocessableEntity, "Add at least one question before submitting.", draftInput{})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "bulk create questions")
	defer cancel()

	created, err := h.API.BulkCreateQuestions(ctx, auth.Credentials(r), drafts)
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "bulk create questions failed", err, basePath)
			return
		}
		h.Log.Warn("bulk create questions failed", zap.Int("count", len(drafts)), zap.Error(err))
		h.renderDrafts(w, r, b, http.StatusUnprocessableEntity, backend.UserMessage(err), draftInput{})
		return
	}

	b.bank.Append(b.resolve(created)...)
	b.mu.Lock()
	b.drafts = nil
	b.mu.Unlock()
	h.Log.Info("questions created", zap.Int("count", len(created)))

	if r.Header.Get("HX-Request") == "" {
		h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Questions created successfully.")
		http.Redirect(w, r, screens.Resume(basePath), http.StatusSeeOther)
		return
	}
	// The bank changed too, so htmx swaps the whole page body.
	uierrors.Toast(w, http.StatusOK, auth.FlashSuccess, "Questions created successfully.")
	data := h.build(viewdata.NewBaseVM(w, r, "Questions", "/dashboard/calendar"), b)
	templates.RenderSnippet(w, "questions_body", data)
}

// renderDrafts answers a draft mutation. Full-page posts flash and redirect
// back; htmx posts get the draft panel.
func (h *Handler) renderDrafts(w http.ResponseWriter, r *http.Request, b *board, status int, msg string, in draftInput) {
	if r.Header.Get("HX-Request") == "" {
		if msg != "" {
			h.SessionMgr.AddFlash(w, r, auth.FlashError, msg)
		}
		http.Redirect(w, r, screens.Resume(basePath), http.StatusSeeOther)
		return
	}
	data := h.build(viewdata.NewBaseVM(w, r, "Questions", "/dashboard/calendar"), b)
	data.DraftError = msg
	data.Draft = in
	if msg != "" {
		uierrors.Toast(w, status, auth.FlashError, msg)
	} else {
		w.WriteHeader(status)
	}
	templates.RenderSnippet(w, "questions_drafts", data)
}
