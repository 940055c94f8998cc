// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the basic view model for error pages.
type pageData struct {
	Title      string
	IsLoggedIn bool
	IsAdmin    bool
	UserName   string
	Message    string
	BackURL    string
}

// Handler is the errors feature handler.
// No store needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:   "Access denied",
		Message: "You don't have permission to view this page.",
		BackURL: "/",
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.IsAdmin = u.IsAdmin
		data.UserName = u.Name
	}

	templates.Render(w, r, "error_forbidden", data)
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:   "Sign in required",
		Message: "Please sign in to continue.",
		BackURL: "/login",
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.IsAdmin = u.IsAdmin
		data.UserName = u.Name
	}

	// Reuses the error_forbidden template; a distinct unauthorized view
	// can be added later if the pages need to diverge.
	templates.Render(w, r, "error_forbidden", data)
}
