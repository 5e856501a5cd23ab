// internal/app/features/questionnaires/create.go
package questionnaires

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/inputval"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const ratingPrefix = "rating_"

func eventPath(id string) string { return "/dashboard/events/" + id }

func viewPath(id string) string { return eventPath(id) + "/questionnaire" }

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/events/{id}/questionnaire/new                                |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeNew lists the questions for the event's type, grouped by trait, for
// hand-picking.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sid, sess := auth.SessionID(r), auth.Credentials(r)

	var (
		p    *picker
		name string
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		p, err = h.obtainPicker(gctx, sid, screens.IsMount(r), id)
		return err
	})
	g.Go(func() error {
		ev, err := h.API.Event(gctx, sess, id)
		if err != nil {
			h.Log.Warn("load event for questionnaire failed", zap.String("event_id", id), zap.Error(err))
			return nil
		}
		name = ev.Name
		return nil
	})
	err := g.Wait()
	if backend.IsUnauthorized(err) {
		h.ErrLog.LogBackendError(w, r, "load questions for event failed", err, eventPath(id))
		return
	}
	if err != nil {
		h.Log.Warn("load questions for event failed", zap.String("event_id", id), zap.Error(err))
	}

	data := h.buildNew(viewdata.NewBaseVM(w, r, "Create Questionnaire", eventPath(id)), p, id, name)
	if err != nil && data.Error == "" {
		data.Error = backend.UserMessage(err)
	}
	templates.Render(w, r, "questionnaire_new", data)
}

func (h *Handler) buildNew(base viewdata.BaseVM, p *picker, eventID, name string) newData {
	data := newData{BaseVM: base, EventID: eventID, EventName: name, Scale: ratingScale, Max: models.MaxQuestionsPerTrait}
	if p == nil {
		return data
	}
	sel, rat := p.selection()
	v := p.questions.View()
	for _, g := range v.Groups {
		tg := traitGroup{Trait: traitLabel(g.Key)}
		for _, q := range g.Items {
			vm := toQuestionVM(q)
			vm.Selected = sel[q.ID]
			vm.Rating = rat[q.ID]
			if vm.Selected {
				tg.Selected++
			}
			tg.Questions = append(tg.Questions, vm)
		}
		data.Groups = append(data.Groups, tg)
	}
	if v.Err != nil {
		data.Error = backend.UserMessage(v.Err)
	}
	return data
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /dashboard/events/{id}/questionnaire                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleCreate submits the hand-picked questions and their ratings.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse questionnaire form failed", err, "Invalid form data.", viewPath(id)+"/new")
		return
	}
	ids, ratings, res := parseSelection(r)

	sid, sess := auth.SessionID(r), auth.Credentials(r)
	p, err := h.obtainPicker(r.Context(), sid, false, id)
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "load questions for event failed", err, eventPath(id))
			return
		}
		res.Add("", backend.UserMessage(err))
	}
	p.choose(ids, ratings)
	if !res.HasErrors() {
		res = validateSelection(p.questions.All(), ids)
	}
	if res.HasErrors() {
		data := h.buildNew(viewdata.NewBaseVM(w, r, "Create Questionnaire", eventPath(id)), p, id, "")
		data.Error = res.First()
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "questionnaire_new", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create questionnaire")
	defer cancel()
	in := models.NewQuestionnaire{EventID: id, SelectedQuestions: ids, Ratings: ratings}
	if err := h.API.CreateQuestionnaire(ctx, sess, in); err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "create questionnaire failed", err, eventPath(id))
			return
		}
		h.Log.Warn("create questionnaire failed", zap.String("event_id", id), zap.Error(err))
		data := h.buildNew(viewdata.NewBaseVM(w, r, "Create Questionnaire", eventPath(id)), p, id, "")
		data.Error = backend.UserMessage(err)
		w.WriteHeader(http.StatusBadGateway)
		templates.Render(w, r, "questionnaire_new", data)
		return
	}

	h.Log.Info("questionnaire created", zap.String("event_id", id), zap.Int("questions", len(ids)))
	h.Screens.Drop(sid, screens.Questionnaire)
	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess, "Questionnaire created successfully.")
	http.Redirect(w, r, viewPath(id), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /dashboard/events/{id}/questionnaire/randomize                         |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleRandomize lets the backend pick and attach the questions.
func (h *Handler) HandleRandomize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "randomize questionnaire")
	defer cancel()

	q, err := h.API.RandomizeQuestionnaire(ctx, auth.Credentials(r), id)
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "randomize questionnaire failed", err, eventPath(id))
			return
		}
		h.Log.Warn("randomize questionnaire failed", zap.String("event_id", id), zap.Error(err))
		h.SessionMgr.AddFlash(w, r, auth.FlashError, backend.UserMessage(err))
		http.Redirect(w, r, viewPath(id)+"/new", http.StatusSeeOther)
		return
	}

	h.Log.Info("questionnaire randomized", zap.String("event_id", id), zap.Int("questions", len(q.Questions)))
	h.Screens.Drop(auth.SessionID(r), screens.Questionnaire)
	h.SessionMgr.AddFlash(w, r, auth.FlashSuccess,
		fmt.Sprintf("Questionnaire created with %d randomly selected questions.", len(q.Questions)))
	http.Redirect(w, r, viewPath(id), http.StatusSeeOther)
}

// parseSelection reads the checked question ids and their optional
// rating_<id> values. Ratings of unchecked questions are ignored.
func parseSelection(r *http.Request) ([]string, map[string]int, *inputval.Result) {
	res := &inputval.Result{}
	var ids []string
	seen := map[string]bool{}
	for _, id := range r.PostForm["question"] {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	ratings := map[string]int{}
	for _, id := range ids {
		raw := strings.TrimSpace(r.PostForm.Get(ratingPrefix + id))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 5 {
			res.Add(ratingPrefix+id, "Ratings must be between 1 and 5.")
			continue
		}
		ratings[id] = n
	}
	return ids, ratings, res
}

// validateSelection enforces at least one question, only questions offered
// for the event, and at most MaxQuestionsPerTrait per trait.
func validateSelection(offered []models.Question, ids []string) *inputval.Result {
	res := &inputval.Result{}
	if len(ids) == 0 {
		res.Add("question", "Please select at least one question.")
		return res
	}
	byID := make(map[string]models.Question, len(offered))
	for _, q := range offered {
		byID[q.ID] = q
	}
	perTrait := map[string]int{}
	var order []string
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			res.Add("question", "A selected question is not available for this event.")
			return res
		}
		key := q.TraitID.Trait
		if key == "" {
			key = collection.UnknownGroup
		}
		if perTrait[key] == 0 {
			order = append(order, key)
		}
		perTrait[key]++
	}
	for _, trait := range order {
		if n := perTrait[trait]; n > models.MaxQuestionsPerTrait {
			res.Add("question", fmt.Sprintf("You can select up to %d questions per trait (%s has %d).",
				models.MaxQuestionsPerTrait, traitLabel(trait), n))
		}
	}
	return res
}
