// internal/app/features/questionnaires/handler.go
package questionnaires

import (
	"context"
	"sync"

	uierrors "github.com/dalemusser/eventdash/internal/app/features/errors"
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/dalemusser/eventdash/internal/app/system/timeouts"
	"github.com/dalemusser/eventdash/internal/domain/models"
	"go.uber.org/zap"
)

// UnknownTrait labels questions that carry no trait.
const UnknownTrait = "Unknown Trait"

// Handler serves questionnaire creation and the questionnaire view for one
// event.
type Handler struct {
	API        *backend.Client
	Screens    *screens.Registry
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Settings   screens.Settings
	Log        *zap.Logger
}

func NewHandler(api *backend.Client, reg *screens.Registry, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, settings screens.Settings, logger *zap.Logger) *Handler {
	return &Handler{
		API:        api,
		Screens:    reg,
		SessionMgr: sm,
		ErrLog:     errLog,
		Settings:   settings,
		Log:        logger,
	}
}

type questionsState = collection.State[models.Question]

// picker is the create screen: the event's candidate questions and the
// current selection.
type picker struct {
	mu        sync.Mutex
	eventID   string
	questions *questionsState
	selected  map[string]bool
	ratings   map[string]int
}

func (h *Handler) newPicker() *picker {
	return &picker{questions: collection.New(collection.Options[models.Question]{
		Location: h.Settings.Loc(),
		GroupKey: func(q models.Question) string { return q.TraitID.Trait },
		GroupBy:  true,
	})}
}

func (p *picker) event() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.eventID
}

// bind points the picker at eventID, clearing any selection made for a
// different event.
func (p *picker) bind(eventID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.eventID != eventID {
		p.eventID = eventID
		p.selected = map[string]bool{}
		p.ratings = map[string]int{}
	}
}

func (p *picker) choose(ids []string, ratings map[string]int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = make(map[string]bool, len(ids))
	for _, id := range ids {
		p.selected[id] = true
	}
	p.ratings = ratings
}

func (p *picker) selection() (map[string]bool, map[string]int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel := make(map[string]bool, len(p.selected))
	for k, v := range p.selected {
		sel[k] = v
	}
	rat := make(map[string]int, len(p.ratings))
	for k, v := range p.ratings {
		rat[k] = v
	}
	return sel, rat
}

// obtainPicker returns the picker bound to eventID, fetching the event's
// questions on mount, on first use and when the event changed.
func (h *Handler) obtainPicker(ctx context.Context, sid string, mount bool, eventID string) (*picker, error) {
	p, created := screens.Obtain(h.Screens, sid, screens.Questionnaire, h.newPicker)
	stale := created || mount || p.event() != eventID || !p.questions.Loaded()
	p.bind(eventID)
	if !stale {
		return p, nil
	}
	err := screens.Refetch(ctx, p.questions, func(c context.Context) ([]models.Question, error) {
		c, cancel := timeouts.WithTimeout(c, timeouts.Medium(), h.Log, "fetch questions for event")
		defer cancel()
		return h.API.QuestionsForEvent(c, eventID)
	})
	return p, err
}

func traitLabel(key string) string {
	if key == "" || key == collection.UnknownGroup {
		return UnknownTrait
	}
	return key
}
