// internal/app/features/reports/routes.go
package reports

import (
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /dashboard/events/{id}/reports.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(rr chi.Router) {
		rr.Use(sm.RequireSignedIn)
		rr.Use(sm.RequireAdmin)

		rr.Get("/", h.ServeReport)
		rr.Get("/details", h.ServeDetails)
		rr.Get("/details.csv", h.ServeCSV)
	})

	return r
}
