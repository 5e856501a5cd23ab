// internal/app/features/events/handler.go
package events

import (
	"context"
	"time"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultMaxUpload caps a multipart event submission.
const DefaultMaxUpload int64 = 20 << 20

// Handler serves the admin event screens: list, detail, create, edit, delete.
type Handler struct {
	API        *backend.Client
	Screens    *screens.Registry
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Settings   screens.Settings
	MaxUpload  int64
	Log        *zap.Logger

	now func() time.Time
}

// NewHandler wires the events feature.
func NewHandler(api *backend.Client, reg *screens.Registry, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, settings screens.Settings, maxUpload int64, logger *zap.Logger) *Handler {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	return &Handler{
		API:        api,
		Screens:    reg,
		SessionMgr: sm,
		ErrLog:     errLog,
		Settings:   settings,
		MaxUpload:  maxUpload,
		Log:        logger,
		now:        time.Now,
	}
}

type eventsState = collection.State[models.Event]

var listQuery = screens.Query{
	Filters: map[string]string{
		"type": models.EventFieldType,
		"date": models.EventFieldDate,
	},
	Group:        "group",
	GroupDefault: true,
}

func (h *Handler) newState() *eventsState {
	return collection.New(collection.Options[models.Event]{
		PageSize:   h.Settings.PageSize,
		MaxButtons: h.Settings.MaxButtons,
		Location:   h.Settings.Loc(),
		GroupKey:   func(e models.Event) string { return e.Type.Name },
		GroupBy:    true,
	})
}

func (h *Handler) fetchAdmin(sess backend.Session) func(context.Context) ([]models.Event, error) {
	return func(ctx context.Context) ([]models.Event, error) {
		ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "fetch admin events")
		defer cancel()
		return h.API.AdminEvents(ctx, sess)
	}
}

// mounted returns the session's list state if the list screen is live.
func (h *Handler) mounted(sid string) (*eventsState, bool) {
	return screens.Peek[*eventsState](h.Screens, sid, screens.Events)
}
