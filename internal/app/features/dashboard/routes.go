// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the dashboard at /dashboard.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Get("/", h.ServeDashboard)
	})

	return r
}
