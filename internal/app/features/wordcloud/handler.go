// internal/app/features/wordcloud/handler.go
package wordcloud

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	cloud "github.com/dalemusser/eventdash/internal/app/system/wordcloud"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler serves the comment word cloud.
type Handler struct {
	API *backend.Client
	Log *zap.Logger
}

func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	return &Handler{API: api, Log: logger}
}

type option struct {
	ID   string
	Name string
}

type pageData struct {
	viewdata.BaseVM
	Type     string
	Event    string
	Types    []option
	Events   []option
	Words    []cloud.Word
	Comments int
	Error    string
}

// WordsJSON feeds the client-side cloud.
func (d pageData) WordsJSON() template.JS {
	if len(d.Words) == 0 {
		return template.JS("[]")
	}
	b, err := json.Marshal(d.Words)
	if err != nil {
		return template.JS("[]")
	}
	return template.JS(b)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/wordcloud?type=&event=                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeCloud lists public events (optionally by type) and, for the chosen
// event, weighs the words of its comments by frequency.
func (h *Handler) ServeCloud(w http.ResponseWriter, r *http.Request) {
	typ := strings.TrimSpace(query.Get(r, "type"))
	eventID := strings.TrimSpace(query.Get(r, "event"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "word cloud")
	defer cancel()

	var (
		types    []models.EventType
		events   []models.Event
		comments []models.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if types, err = h.API.EventTypes(gctx); err != nil {
			h.Log.Warn("load event types failed", zap.Error(err))
		}
		return nil
	})
	g.Go(func() (err error) {
		events, err = h.API.PublicEvents(gctx, typ)
		return err
	})
	if eventID != "" {
		g.Go(func() (err error) {
			comments, err = h.API.Comments(gctx, eventID)
			return err
		})
	}
	err := g.Wait()

	data := pageData{
		BaseVM:   viewdata.NewBaseVM(w, r, "Word Cloud", "/dashboard/calendar"),
		Type:     typ,
		Event:    eventID,
		Comments: len(comments),
		Words:    cloud.Build(commentTexts(comments), cloud.Options{}),
	}
	for _, t := range types {
		data.Types = append(data.Types, option{ID: t.ID, Name: t.EventType})
	}
	for _, e := range events {
		data.Events = append(data.Events, option{ID: e.ID, Name: e.Name})
	}
	if err != nil {
		h.Log.Warn("load word cloud failed", zap.String("type", typ), zap.String("event_id", eventID), zap.Error(err))
		data.Error = backend.UserMessage(err)
	}

	if r.Header.Get("HX-Request") != "" {
		templates.RenderSnippet(w, "wordcloud_body", data)
		return
	}
	templates.Render(w, r, "wordcloud", data)
}

func commentTexts(cs []models.Comment) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, htmlsanitize.StripTags(c.Text))
	}
	return out
}
