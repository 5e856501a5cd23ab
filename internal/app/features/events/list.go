// internal/app/features/events/list.go
package events

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
| GET /dashboard/events – list                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList renders the event list. A full page load fetches; htmx requests
// (paging, filter changes) reshape the mounted collection.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	st, ok := h.load(w, r)
	if !ok {
		return
	}
	screens.ApplyQuery(st, r, listQuery)
	h.renderList(w, r, st, r.Header.Get("HX-Request") != "")
}

// ServeTable is the htmx partial for the table region.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	st, ok := h.load(w, r)
	if !ok {
		return
	}
	screens.ApplyQuery(st, r, listQuery)
	h.renderList(w, r, st, true)
}

// HandleRefresh re-fetches the list, keeping filters and page.
// POST /dashboard/events/refresh
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	sid := auth.SessionID(r)
	st, _ := screens.Obtain(h.Screens, sid, screens.Events, h.newState)
	if err := screens.Refetch(r.Context(), st, h.fetchAdmin(auth.Credentials(r))); err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "refresh events failed", err, "/dashboard/events")
			return
		}
		h.Log.Warn("refresh events failed", zap.Error(err))
	}
	if r.Header.Get("HX-Request") == "" {
		http.Redirect(w, r, resumeList(listPath), http.StatusSeeOther)
		return
	}
	h.renderList(w, r, st, true)
}

// load obtains the list state. A failed fetch keeps whatever records the
// state already had and is shown inline; only an authorization failure
// leaves the page.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*eventsState, bool) {
	st, err := screens.Load(r, h.Screens, auth.SessionID(r), screens.Events, h.newState, h.fetchAdmin(auth.Credentials(r)))
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "load events failed", err, "/dashboard/events")
			return nil, false
		}
		h.Log.Warn("load events failed", zap.Error(err))
	}
	return st, true
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, st *eventsState, partial bool) {
	data := h.buildList(viewdata.NewBaseVM(w, r, "Events", "/dashboard/calendar"), st)
	if partial {
		templates.RenderSnippet(w, "events_table", data)
		return
	}
	templates.Render(w, r, "events_list", data)
}

func (h *Handler) buildList(base viewdata.BaseVM, st *eventsState) listData {
	v := st.View()
	now, loc := h.now(), h.Settings.Loc()

	data := listData{
		BaseVM:  base,
		Type:    v.Filters.Get(models.EventFieldType),
		Date:    v.Filters.Get(models.EventFieldDate),
		GroupBy: v.GroupBy,
		Types:   st.Distinct(models.EventFieldType),
		Total:   v.Total,
		Shown:   len(v.Filtered),
		Empty:   v.Empty(),
	}
	if v.Err != nil {
		data.Error = backend.UserMessage(v.Err)
	}
	if v.GroupBy {
		for _, g := range v.Groups {
			data.Groups = append(data.Groups, groupVM{Key: g.Key, Rows: toRows(g.Items, now, loc)})
		}
	} else {
		data.Rows = toRows(v.Items, now, loc)
		data.Pager = pagerVM{
			Pager:   v.Pager,
			BaseURL: tableURL(data.Type, data.Date, data.GroupBy),
			Target:  "events-table",
		}
	}
	return data
}
