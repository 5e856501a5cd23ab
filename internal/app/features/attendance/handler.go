// internal/app/features/attendance/handler.go
package attendance

import (
	"context"
	"sync"
	"time"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const basePath = "/dashboard/attendance"

// Handler serves the attendance roster, approval and the attendance chart.
type Handler struct {
	API        *backend.Client
	Screens    *screens.Registry
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Settings   screens.Settings
	Log        *zap.Logger

	now func() time.Time
}

func NewHandler(api *backend.Client, reg *screens.Registry, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, settings screens.Settings, logger *zap.Logger) *Handler {
	return &Handler{
		API:        api,
		Screens:    reg,
		SessionMgr: sm,
		ErrLog:     errLog,
		Settings:   settings,
		Log:        logger,
		now:        time.Now,
	}
}

type eventsState = collection.State[models.Event]
type rosterState = collection.State[models.Attendee]

// roll is the roster screen: the chosen event and its attendees.
type roll struct {
	mu      sync.Mutex
	eventID string
	event   models.Event
	roster  *rosterState
}

func (rl *roll) current() (string, models.Event) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.eventID, rl.event
}

var rosterQuery = screens.Query{
	Filters: map[string]string{"attended": models.AttendeeFieldAttended},
}

func (h *Handler) newEvents() *eventsState {
	return collection.New(collection.Options[models.Event]{
		Location: h.Settings.Loc(),
		Compare:  func(a, b models.Event) int { return a.DateStart.Compare(b.DateStart) },
	})
}

func (h *Handler) newRoll() *roll {
	return &roll{roster: collection.New(collection.Options[models.Attendee]{
		PageSize:   h.Settings.PageSize,
		MaxButtons: h.Settings.MaxButtons,
		Location:   h.Settings.Loc(),
	})}
}

func (h *Handler) fetchEvents(sess backend.Session) func(context.Context) ([]models.Event, error) {
	return func(ctx context.Context) ([]models.Event, error) {
		ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "fetch active events")
		defer cancel()
		return h.API.ActiveEvents(ctx, sess)
	}
}

// loadRoll fetches the roster and the event together and binds them to rl.
// The event is only needed for its end date; a failed event lookup is
// reported the same way as a failed roster.
func (h *Handler) loadRoll(ctx context.Context, sess backend.Session, rl *roll, eventID string) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "load roster")
	defer cancel()

	rl.mu.Lock()
	if rl.eventID != eventID {
		rl.eventID = eventID
		rl.event = models.Event{}
		rl.roster.SetFilters(collection.Filters{})
	}
	rl.mu.Unlock()

	var ev models.Event
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return screens.Refetch(gctx, rl.roster, func(c context.Context) ([]models.Attendee, error) {
			return h.API.Attendees(c, sess, eventID)
		})
	})
	g.Go(func() error {
		var err error
		ev, err = h.API.Event(gctx, sess, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	rl.mu.Lock()
	if rl.eventID == eventID {
		rl.event = ev
	}
	rl.mu.Unlock()
	return nil
}

func (h *Handler) mountedRoll(sid string) (*roll, bool) {
	return screens.Peek[*roll](h.Screens, sid, screens.AttendanceRoll)
}
