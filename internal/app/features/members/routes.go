// internal/app/features/members/routes.go
package members

import (
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin member directory at /members.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireAdmin)

		r.Get("/", h.ServeList)
		r.Get("/new", h.ServeNew)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}/edit", h.ServeEdit)
		r.Post("/{id}/edit", h.HandleEdit)
		r.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}

// PublicRoutes mounts the self-registration form at /register. No
// session is required.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeRegister)
	r.Post("/", h.HandleRegister)

	return r
}
