// internal/app/features/tribes/routes.go
package tribes

import (
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the tribe statistics at /tribes. Admin only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireAdmin)

		r.Get("/", h.ServeTribes)
		r.Get("/export", h.ServeExport)
	})

	return r
}
