// internal/app/features/leaders/routes.go
package leaders

import (
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireAdmin)

		pr.Get("/", h.ServeList)
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Get("/export", h.ServeExport)
		pr.Get("/import", h.ServeImport)
		pr.Post("/import", h.HandleImport)
		pr.Get("/import/template", h.ServeImportTemplate)
		pr.Get("/photos", h.ServePhotos)
		pr.Get("/{id}/view", h.ServeView)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Get("/{id}/transfer", h.ServeTransfer)
		pr.Post("/{id}/transfer", h.HandleTransfer)
		pr.Post("/{id}/status", h.HandleChangeStatus)
		pr.Post("/{id}/followup", h.HandleAddFollowUp)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
