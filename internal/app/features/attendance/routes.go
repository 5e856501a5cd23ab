// internal/app/features/attendance/routes.go
package attendance

import (
	"github.com/dalemusser/eventdash/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the roster screen under /dashboard/attendance.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireAdmin)

		pr.Get("/", h.ServeAttendance)
		pr.Get("/roster", h.ServeRoster)
		pr.Post("/{id}/approve", h.HandleApprove)
	})
	return r
}

// ChartRoutes is mounted under /dashboard/events/{id}/attendance.
func ChartRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireAdmin)

		pr.Get("/", h.ServeChart)
	})
	return r
}
