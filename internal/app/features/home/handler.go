// internal/app/features/home/handler.go
package home

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/eventdash/internal/app/system/paging"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const excerptLen = 160

// Handler holds dependencies needed to serve the public home page.
type Handler struct {
	API      *backend.Client
	Settings screens.Settings
	Log      *zap.Logger

	now func() time.Time
}

func NewHandler(api *backend.Client, settings screens.Settings, logger *zap.Logger) *Handler {
	return &Handler{
		API:      api,
		Settings: settings,
		Log:      logger,
		now:      time.Now,
	}
}

type eventCard struct {
	ID       string
	Name     string
	TypeName string
	When     string
	Location string
	Image    string
	Excerpt  string
}

type monthVM struct {
	Title  string
	Events []eventCard
}

type typeOption struct {
	ID   string
	Name string
}

type pagerVM struct {
	Pager   paging.Pager
	BaseURL string
	Target  string
}

type homeData struct {
	viewdata.BaseVM
	Type   string
	Types  []typeOption
	Months []monthVM
	Total  int
	Error  string
	Pager  pagerVM
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – public landing                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot lists upcoming public events, one page at a time, with each page
// split into month sections. The type filter is applied by the backend.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	typ := strings.TrimSpace(query.Get(r, "type"))
	loc := h.Settings.Loc()
	now := h.now()

	st := collection.New(collection.Options[models.Event]{
		PageSize:   h.Settings.PageSize,
		MaxButtons: h.Settings.MaxButtons,
		Location:   loc,
		Compare:    byStart,
	})

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "home events")
	defer cancel()

	var types []models.EventType
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return st.Fetch(gctx, func(c context.Context) ([]models.Event, error) {
			evs, err := h.API.PublicEvents(c, typ)
			return upcoming(evs, now), err
		})
	})
	g.Go(func() error {
		var err error
		if types, err = h.API.EventTypes(gctx); err != nil {
			h.Log.Warn("load event types failed", zap.Error(err))
		}
		return nil
	})
	fetchErr := g.Wait()
	if fetchErr != nil {
		h.Log.Warn("load public events failed", zap.Error(fetchErr))
	}

	st.Paginate(paging.ParsePage(r))
	v := st.View()

	data := homeData{
		BaseVM: viewdata.NewBaseVM(w, r, "Welcome", "/"),
		Type:   typ,
		Types:  toTypeOptions(types),
		Months: toMonths(v.Items, loc),
		Total:  v.Total,
		Pager:  pagerVM{Pager: v.Pager, BaseURL: pageURL(typ), Target: "home-events"},
	}
	if fetchErr != nil {
		data.Error = backend.UserMessage(fetchErr)
	}

	if r.Header.Get("HX-Request") != "" {
		templates.RenderSnippet(w, "home_events", data)
		return
	}
	templates.Render(w, r, "home", data)
}

// upcoming keeps events that have not ended yet. An event with no end date
// counts as upcoming until its start date has passed.
func upcoming(events []models.Event, now time.Time) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		end := e.DateEnd
		if end.IsZero() {
			end = e.DateStart
		}
		if end.IsZero() || !end.Before(now) {
			out = append(out, e)
		}
	}
	return out
}

func byStart(a, b models.Event) int { return a.DateStart.Compare(b.DateStart) }

// toMonths splits one page of events into month sections in page order.
func toMonths(events []models.Event, loc *time.Location) []monthVM {
	groups := collection.GroupBy(events, collection.ByField[models.Event](models.EventFieldDate, loc))
	out := make([]monthVM, 0, len(groups))
	for _, g := range groups {
		m := monthVM{Title: monthTitle(g.Key)}
		for _, e := range g.Items {
			m.Events = append(m.Events, toCard(e, loc))
		}
		out = append(out, m)
	}
	return out
}

func monthTitle(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}

func toCard(e models.Event, loc *time.Location) eventCard {
	c := eventCard{
		ID:       e.ID,
		Name:     e.Name,
		TypeName: e.Type.Name,
		Location: e.Location,
		Image:    e.CoverImage(),
		Excerpt:  htmlsanitize.Excerpt(e.Description, excerptLen),
	}
	if !e.DateStart.IsZero() {
		c.When = e.DateStart.In(loc).Format("Mon, Jan 2 · 3:04 PM")
	}
	return c
}

func toTypeOptions(types []models.EventType) []typeOption {
	out := make([]typeOption, 0, len(types))
	for _, t := range types {
		out = append(out, typeOption{ID: t.ID, Name: t.EventType})
	}
	return out
}

func pageURL(typ string) string {
	if typ == "" {
		return "/?"
	}
	return "/?" + url.Values{"type": {typ}}.Encode() + "&"
}
