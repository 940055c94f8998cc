// internal/app/features/evaluation/routes.go
package evaluation

import (
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the AGM evaluation at /evaluation. Admin only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireAdmin)

		r.Get("/", h.ServeEvaluation)
		r.Get("/export", h.ServeExport)
	})

	return r
}
