// internal/app/features/reporting/routes.go
package reporting

import (
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the reporting-status list at /reporting.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)

		r.Get("/", h.ServeStatus)
		r.Post("/{id}/followup", h.HandleAddFollowUp)
	})

	return r
}
