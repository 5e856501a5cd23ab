// internal/app/features/events/detail.go
package events

import (
	"context"
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/events/{id} – detail                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeDetail shows one event with links to its questionnaire, reports and
// attendance. The event and the questionnaire check are fetched together.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess := auth.Credentials(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "event detail")
	defer cancel()

	var (
		ev     models.Event
		hasQnr bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ev, err = h.API.Event(gctx, sess, id)
		return err
	})
	g.Go(func() error {
		ok, err := h.API.HasQuestionnaire(gctx, sess, id)
		if err != nil {
			// The detail page still works without the questionnaire link.
			h.Log.Warn("questionnaire check failed", zap.String("event_id", id), zap.Error(err))
			return nil
		}
		hasQnr = ok
		return nil
	})
	if err := g.Wait(); err != nil {
		h.ErrLog.LogBackendError(w, r, "load event failed", err, "/dashboard/events")
		return
	}

	data := detailData{
		BaseVM:           viewdata.NewBaseVM(w, r, ev.Name, "/dashboard/events"),
		Event:            toRow(ev, h.now(), h.Settings.Loc()),
		HasQuestionnaire: hasQnr,
		Organization:     ev.Organization,
		Department:       ev.Department,
	}
	if r.Header.Get("HX-Request") != "" {
		templates.RenderSnippet(w, "event_modal", data)
		return
	}
	templates.Render(w, r, "event_detail", data)
}

// lookup returns the event from the mounted list when present, falling back
// to the backend.
func (h *Handler) lookup(ctx context.Context, r *http.Request, id string) (models.Event, error) {
	if st, ok := h.mounted(auth.SessionID(r)); ok {
		for _, e := range st.All() {
			if e.ID == id {
				return e, nil
			}
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	return h.API.Event(ctx, auth.Credentials(r), id)
}
