// internal/app/features/questions/list.go
package questions

import (
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/questions – bank + drafts                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeQuestions renders the question bank grouped by trait and the draft
// panel. A full page load re-fetches traits, types and questions unless it
// resumes the board after a form post.
func (h *Handler) ServeQuestions(w http.ResponseWriter, r *http.Request) {
	b, ok := h.obtain(w, r)
	if !ok {
		return
	}
	screens.ApplyQuery(b.bank, r, bankQuery)
	data := h.build(viewdata.NewBaseVM(w, r, "Questions", "/dashboard/calendar"), b)
	if r.Header.Get("HX-Request") != "" {
		templates.RenderSnippet(w, "questions_table", data)
		return
	}
	templates.Render(w, r, "questions", data)
}

// ServeTable is the htmx partial for paging and filtering the bank.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	b, ok := h.obtain(w, r)
	if !ok {
		return
	}
	screens.ApplyQuery(b.bank, r, bankQuery)
	data := h.build(viewdata.NewBaseVM(w, r, "Questions", "/dashboard/calendar"), b)
	templates.RenderSnippet(w, "questions_table", data)
}

// obtain returns the session's board, loading it on mount or first use.
// A failed load is shown inline; only an authorization failure leaves the
// page.
func (h *Handler) obtain(w http.ResponseWriter, r *http.Request) (*board, bool) {
	b, created := screens.Obtain(h.Screens, auth.SessionID(r), screens.Questions, h.newBoard)
	if !created && !screens.IsMount(r) && b.bank.Loaded() {
		return b, true
	}
	if err := h.load(r.Context(), b); err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "load questions failed", err, basePath)
			return nil, false
		}
		h.Log.Warn("load questions failed", zap.Error(err))
	}
	return b, true
}

func (h *Handler) build(base viewdata.BaseVM, b *board) pageData {
	traits, types := b.catalog()
	v := b.bank.View()

	data := pageData{
		BaseVM:  base,
		Traits:  traitOptions(traits),
		Types:   typeOptions(types),
		Type:    v.Filters.Get(models.QuestionFieldType),
		Trait:   v.Filters.Get(models.QuestionFieldTrait),
		GroupBy: v.GroupBy,
		Total:   v.Total,
		Empty:   v.Empty(),
	}
	if v.GroupBy {
		for _, g := range v.Groups {
			data.Groups = append(data.Groups, groupVM{Key: g.Key, Rows: toRows(g.Items)})
		}
	} else {
		data.Rows = toRows(v.Items)
	}
	data.Pager = pagerVM{Pager: v.Pager, BaseURL: tableURL(data.Type, data.Trait, data.GroupBy), Target: "questions-table"}
	if v.Err != nil {
		data.Error = backend.UserMessage(v.Err)
	}
	data.Drafts = toDraftRows(b.pending(), data.Traits, data.Types)
	return data
}
