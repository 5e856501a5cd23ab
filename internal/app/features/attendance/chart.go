// internal/app/features/attendance/chart.go
package attendance

import (
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/charts"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/events/{id}/attendance – chart                               |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeChart shows registered/attended/absent totals as a bar chart above
// the roster. Counts, event and roster are fetched together.
func (h *Handler) ServeChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess := auth.Credentials(r)
	back := "/dashboard/events/" + id

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "attendance chart")
	defer cancel()

	var (
		counts models.AttendanceCounts
		event  models.Event
		roster []models.Attendee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = h.API.AttendanceCounts(gctx, sess, id)
		return err
	})
	g.Go(func() (err error) {
		event, err = h.API.Event(gctx, sess, id)
		return err
	})
	g.Go(func() (err error) {
		roster, err = h.API.Attendees(gctx, sess, id)
		return err
	})
	if err := g.Wait(); err != nil {
		h.ErrLog.LogBackendError(w, r, "load attendance chart failed", err, back)
		return
	}

	status := models.StatusAt(h.now(), event.DateEnd)
	data := chartData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Attendance · "+event.Name, back),
		EventID:   id,
		EventName: event.Name,
		Status:    status,
		Counts:    counts,
		Chart:     charts.AttendanceBar(counts),
		Rows:      toRows(roster, status),
	}
	templates.Render(w, r, "attendance_chart", data)
}
