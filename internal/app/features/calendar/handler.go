// internal/app/features/calendar/handler.go
package calendar

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	calgrid "github.com/dalemusser/eventdash/internal/app/system/calendar"
	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const basePath = "/dashboard/calendar"

// Handler serves the admin calendar.
type Handler struct {
	API      *backend.Client
	Screens  *screens.Registry
	ErrLog   *uierrors.ErrorLogger
	Settings screens.Settings
	Log      *zap.Logger

	now func() time.Time
}

func NewHandler(api *backend.Client, reg *screens.Registry, errLog *uierrors.ErrorLogger, settings screens.Settings, logger *zap.Logger) *Handler {
	return &Handler{
		API:      api,
		Screens:  reg,
		ErrLog:   errLog,
		Settings: settings,
		Log:      logger,
		now:      time.Now,
	}
}

type eventsState = collection.State[models.Event]

func (h *Handler) newState() *eventsState {
	return collection.New(collection.Options[models.Event]{
		Location: h.Settings.Loc(),
		Compare:  func(a, b models.Event) int { return a.DateStart.Compare(b.DateStart) },
	})
}

func (h *Handler) fetch(sess backend.Session) func(context.Context) ([]models.Event, error) {
	return func(ctx context.Context) ([]models.Event, error) {
		ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "fetch calendar events")
		defer cancel()
		return h.API.AdminEvents(ctx, sess)
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/calendar?month=&date=                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeCalendar renders the month grid, the selected day and the upcoming
// sidebar. Month navigation is an htmx partial that reuses loaded events.
func (h *Handler) ServeCalendar(w http.ResponseWriter, r *http.Request) {
	sid, sess := auth.SessionID(r), auth.Credentials(r)

	st, err := screens.Load(r, h.Screens, sid, screens.Calendar, h.newState, h.fetch(sess))
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.ErrLog.LogBackendError(w, r, "load calendar events failed", err, "/")
			return
		}
		h.Log.Warn("load calendar events failed", zap.Error(err))
	}

	data := h.build(viewdata.NewBaseVM(w, r, "Calendar", "/"), st.All(),
		query.Get(r, "month"), query.Get(r, "date"))
	if err != nil {
		data.Error = backend.UserMessage(err)
	}

	if r.Header.Get("HX-Request") != "" {
		templates.RenderSnippet(w, "calendar_body", data)
		return
	}
	templates.Render(w, r, "calendar", data)
}

// build lays out the page. A valid date wins over month: the grid shows the
// month containing the selected day.
func (h *Handler) build(base viewdata.BaseVM, events []models.Event, monthParam, dateParam string) pageData {
	loc := h.Settings.Loc()
	now := h.now()

	month := calgrid.ParseMonth(monthParam, now, loc)
	selected, ok := calgrid.ParseDate(dateParam, loc)
	if ok {
		month = time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		selected = time.Time{}
	}

	grid := calgrid.Build(month, events, selected, now, loc)
	data := pageData{
		BaseVM:     base,
		MonthTitle: grid.Title(),
		Month:      grid.Key(),
		PrevURL:    monthURL(grid.PrevKey()),
		NextURL:    monthURL(grid.NextKey()),
		Weekdays:   calgrid.Weekdays,
		Weeks:      toWeeks(grid, loc),
		Upcoming:   upcomingMonths(events, now, loc),
	}
	if ok {
		data.Selected = selected.Format("Monday, January 2, 2006")
		data.SelectedEvents = toItems(calgrid.EventsOn(events, selected, loc), loc)
	}
	return data
}
