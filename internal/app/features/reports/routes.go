// internal/app/features/reports/routes.go
package reports

import (
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the report endpoints. The router is mounted at
// /groups/{id}/reports so every path carries the owning group id.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)

		r.Get("/", h.ServeReportsList)
		r.Get("/new", h.ServeNewReport)
		r.Post("/", h.HandleSubmitReport)
		r.Post("/members", h.HandleQuickAddMember)
		r.Get("/{reportID}/edit", h.ServeEditReport)
		r.Post("/{reportID}/edit", h.HandleEditReport)
		r.Post("/{reportID}/delete", h.HandleDeleteReport)
	})

	return r
}
