// internal/app/features/groups/routes.go
package groups

import (
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeGroupsList)

		pr.Get("/new", h.ServeNewGroup)
		pr.Post("/", h.HandleCreateGroup)
		pr.Post("/quick", h.HandleQuickAdd)

		pr.Get("/{id}/edit", h.ServeEditGroup)
		pr.Post("/{id}/edit", h.HandleEditGroup)

		pr.Post("/{id}/delete", h.HandleDeleteGroup)
	})

	return r
}
