// internal/app/features/reports/handler.go
package reports

import (
	"context"
	"sync"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler owns the event report page, its details partial and the CSV
// export.
type Handler struct {
	API      *backend.Client
	Screens  *screens.Registry
	ErrLog   *uierrors.ErrorLogger
	Settings screens.Settings
	Log      *zap.Logger
}

// NewHandler constructs a reports Handler.
func NewHandler(api *backend.Client, reg *screens.Registry, errLog *uierrors.ErrorLogger, settings screens.Settings, logger *zap.Logger) *Handler {
	return &Handler{
		API:      api,
		Screens:  reg,
		ErrLog:   errLog,
		Settings: settings,
		Log:      logger,
	}
}

type detailsState = collection.State[models.SentimentDetail]

// report is the reports screen for one event.
type report struct {
	mu        sync.Mutex
	eventID   string
	eventName string
	counts    models.SentimentCounts
	ratings   []models.AggregatedRating
	details   *detailsState
}

type snapshot struct {
	eventID   string
	eventName string
	counts    models.SentimentCounts
	ratings   []models.AggregatedRating
}

func (rp *report) snapshot() snapshot {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return snapshot{
		eventID:   rp.eventID,
		eventName: rp.eventName,
		counts:    rp.counts,
		ratings:   append([]models.AggregatedRating(nil), rp.ratings...),
	}
}

var detailsQuery = screens.Query{
	Filters: map[string]string{"sentiment": models.SentimentFieldLabel},
}

func (h *Handler) newReport() *report {
	return &report{details: collection.New(collection.Options[models.SentimentDetail]{
		PageSize:   h.Settings.PageSize,
		MaxButtons: h.Settings.MaxButtons,
		Location:   h.Settings.Loc(),
	})}
}

// load fetches counts, aggregated ratings and details together. The event
// name is only a heading, so its failure is logged and ignored.
func (h *Handler) load(ctx context.Context, sess backend.Session, rp *report, eventID string) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "load report")
	defer cancel()

	rp.mu.Lock()
	if rp.eventID != eventID {
		rp.eventID = eventID
		rp.eventName = ""
		rp.counts = models.SentimentCounts{}
		rp.ratings = nil
		rp.details.SetFilters(collection.Filters{})
	}
	rp.mu.Unlock()

	var (
		counts  models.SentimentCounts
		ratings []models.AggregatedRating
		name    string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = h.API.SentimentCounts(gctx, sess, eventID)
		return err
	})
	g.Go(func() (err error) {
		ratings, err = h.API.AggregatedRatings(gctx, sess, eventID)
		return err
	})
	g.Go(func() error {
		return screens.Refetch(gctx, rp.details, func(c context.Context) ([]models.SentimentDetail, error) {
			return h.API.SentimentDetails(c, sess, eventID)
		})
	})
	g.Go(func() error {
		ev, err := h.API.Event(gctx, sess, eventID)
		if err != nil {
			h.Log.Warn("load event for report failed", zap.String("event_id", eventID), zap.Error(err))
			return nil
		}
		name = ev.Name
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	rp.mu.Lock()
	if rp.eventID == eventID {
		rp.counts, rp.ratings, rp.eventName = counts, ratings, name
	}
	rp.mu.Unlock()
	return nil
}
