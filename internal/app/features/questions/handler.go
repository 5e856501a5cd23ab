// internal/app/features/questions/handler.go
package questions

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
	"golang.org/x/sync/errgroup"
)

const basePath = "/dashboard/questions"

// Handler serves the question bank, pending drafts and the event type list.
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

// board is the questions screen: the bank, the trait and type catalogs
// and the drafts not yet submitted.
type board struct {
	mu     sync.Mutex
	bank   *questionsState
	traits []models.Trait
	types  []models.EventType
	drafts []models.NewQuestion
}

var bankQuery = screens.Query{
	Filters: map[string]string{
		"type":  models.QuestionFieldType,
		"trait": models.QuestionFieldTrait,
	},
	Group:        "group",
	GroupDefault: true,
}

func (h *Handler) newBoard() *board {
	return &board{bank: collection.New(collection.Options[models.Question]{
		PageSize:   h.Settings.PageSize,
		MaxButtons: h.Settings.MaxButtons,
		Location:   h.Settings.Loc(),
		GroupKey:   func(q models.Question) string { return q.TraitID.Trait },
		GroupBy:    true,
	})}
}

// catalog returns copies of the trait and type lists.
func (b *board) catalog() ([]models.Trait, []models.EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Trait(nil), b.traits...), append([]models.EventType(nil), b.types...)
}

func (b *board) pending() []models.NewQuestion {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.NewQuestion(nil), b.drafts...)
}

// resolve fills trait and type names on questions the backend returned
// with bare ids.
func (b *board) resolve(qs []models.Question) []models.Question {
	traits, types := b.catalog()
	out := make([]models.Question, 0, len(qs))
	for _, q := range qs {
		if q.TraitID.Trait == "" {
			for _, t := range traits {
				if t.ID == q.TraitID.ID {
					q.TraitID.Trait = t.Label()
					break
				}
			}
		}
		if q.TypeID.Name == "" {
			for _, t := range types {
				if t.ID == q.TypeID.ID {
					q.TypeID.Name = t.EventType
					break
				}
			}
		}
		out = append(out, q)
	}
	return out
}

// load fetches traits, types and questions together, then names bare
// question references from the catalogs before the bank takes them.
func (h *Handler) load(ctx context.Context, b *board) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), h.Log, "load questions")
	defer cancel()

	var (
		traits []models.Trait
		types  []models.EventType
		qs     []models.Question
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		traits, err = h.API.Traits(gctx)
		return err
	})
	g.Go(func() (err error) {
		types, err = h.API.EventTypes(gctx)
		return err
	})
	g.Go(func() (err error) {
		qs, err = h.API.Questions(gctx)
		return err
	})
	err := g.Wait()
	if err == nil {
		b.mu.Lock()
		b.traits, b.types = traits, types
		b.mu.Unlock()
	}
	return screens.Refetch(ctx, b.bank, func(context.Context) ([]models.Question, error) {
		if err != nil {
			return nil, err
		}
		return b.resolve(qs), nil
	})
}

func (h *Handler) mounted(sid string) (*board, bool) {
	return screens.Peek[*board](h.Screens, sid, screens.Questions)
}
