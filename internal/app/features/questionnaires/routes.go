// internal/app/features/questionnaires/routes.go
package questionnaires

import (
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /dashboard/events/{id}/questionnaire.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireAdmin)

		pr.Get("/", h.ServeView)
		pr.Post("/", h.HandleCreate)
		pr.Get("/new", h.ServeNew)
		pr.Post("/randomize", h.HandleRandomize)
		pr.Post("/accepting", h.HandleAccepting)
	})
	return r
}
