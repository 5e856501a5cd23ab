// internal/app/features/questions/routes.go
package questions

import (
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the question bank under /dashboard/questions.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireAdmin)

		pr.Get("/", h.ServeQuestions)
		pr.Get("/table", h.ServeTable)
		pr.Post("/pending", h.HandleAddDraft)
		pr.Post("/pending/{n}/remove", h.HandleRemoveDraft)
		pr.Post("/bulk", h.HandleBulkCreate)
	})
	return r
}

// TypesRoutes mounts the event type list under /dashboard/types.
func TypesRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireAdmin)

		pr.Get("/", h.ServeTypes)
	})
	return r
}
