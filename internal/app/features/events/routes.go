// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin event screens.
//
//	r.Mount("/dashboard/events", events.Routes(eventsHandler, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireAdmin)

		// LIST (htmx table swap for paging and filters)
		pr.Get("/", h.ServeList)
		pr.Get("/table", h.ServeTable)
		pr.Post("/refresh", h.HandleRefresh)

		// CREATE
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)

		// VIEW / EDIT / DELETE
		pr.Get("/{id}", h.ServeDetail)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Get("/{id}/delete", h.ServeDeleteConfirm)
		pr.Post("/{id}/delete", h.HandleDelete)
	})
	return r
}
