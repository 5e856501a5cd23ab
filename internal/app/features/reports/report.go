// internal/app/features/reports/report.go
package reports

import (
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/charts"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/events/{id}/reports                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeReport renders the sentiment and trait charts plus the paged
// details table.
func (h *Handler) ServeReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rp, err := h.obtain(r, id)
	if backend.IsUnauthorized(err) {
		h.ErrLog.LogBackendError(w, r, "load report failed", err, "/dashboard/events/"+id)
		return
	}
	screens.ApplyQuery(rp.details, r, detailsQuery)

	data := h.build(viewdata.NewBaseVM(w, r, "Reports", "/dashboard/events/"+id), rp)
	if err != nil && data.Error == "" {
		data.Error = backend.UserMessage(err)
	}
	if r.Header.Get("HX-Request") != "" {
		templates.RenderSnippet(w, "reports_details", data)
		return
	}
	templates.Render(w, r, "reports", data)
}

// ServeDetails is the htmx partial for filtering and paging the details.
func (h *Handler) ServeDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rp, err := h.obtain(r, id)
	if backend.IsUnauthorized(err) {
		h.ErrLog.LogBackendError(w, r, "load report failed", err, "/dashboard/events/"+id)
		return
	}
	screens.ApplyQuery(rp.details, r, detailsQuery)

	data := h.build(viewdata.NewBaseVM(w, r, "Reports", "/dashboard/events/"+id), rp)
	if err != nil && data.Error == "" {
		data.Error = backend.UserMessage(err)
	}
	templates.RenderSnippet(w, "reports_details", data)
}

// obtain returns the session's report bound to eventID, loading it on
// mount, on first use and when the event changed.
func (h *Handler) obtain(r *http.Request, eventID string) (*report, error) {
	rp, created := screens.Obtain(h.Screens, auth.SessionID(r), screens.Reports, h.newReport)
	if !created && !screens.IsMount(r) && rp.snapshot().eventID == eventID && rp.details.Loaded() {
		return rp, nil
	}
	err := h.load(r.Context(), auth.Credentials(r), rp, eventID)
	if err != nil && !backend.IsUnauthorized(err) {
		h.Log.Warn("load report failed", zap.String("event_id", eventID), zap.Error(err))
	}
	return rp, err
}

func (h *Handler) build(base viewdata.BaseVM, rp *report) pageData {
	snap := rp.snapshot()
	v := rp.details.View()
	selected := v.Filters.Get(models.SentimentFieldLabel)

	data := pageData{
		BaseVM:     base,
		EventID:    snap.eventID,
		EventName:  snap.eventName,
		Counts:     snap.counts,
		Sentiment:  charts.SentimentBar(snap.counts),
		TraitBar:   charts.TraitBar(snap.ratings),
		Radar:      charts.TraitRadar(snap.ratings),
		Traits:     toTraitRows(snap.ratings),
		Sentiments: rp.details.Distinct(models.SentimentFieldLabel),
		Selected:   selected,
		Rows:       toDetailRows(v.Items),
		Total:      v.Total,
		Empty:      v.Empty(),
		Pager:      pagerVM{Pager: v.Pager, BaseURL: detailsURL(snap.eventID, selected), Target: "reports-details"},
		CSVURL:     csvURL(snap.eventID, selected),
	}
	if v.Err != nil {
		data.Error = backend.UserMessage(v.Err)
	}
	return data
}
