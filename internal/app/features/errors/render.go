// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}

	data := pageData{
		Title:   "Sign in required",
		Message: "Please sign in to continue.",
		BackURL: backURL,
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.IsAdmin = u.IsAdmin
		data.UserName = u.Name
	}

	templates.Render(w, r, "error_forbidden", data)
}

// RenderNotFound shows a friendly "not found" page with a message.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	data := pageData{
		Title:   "Not found",
		Message: msg,
		BackURL: backURL,
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.IsAdmin = u.IsAdmin
		data.UserName = u.Name
	}

	templates.Render(w, r, "error_page", data)
}

// RenderBadRequest shows a friendly "bad request" page with a message.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	data := pageData{
		Title:   "Invalid request",
		Message: msg,
		BackURL: backURL,
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.IsAdmin = u.IsAdmin
		data.UserName = u.Name
	}

	templates.Render(w, r, "error_page", data)
}

// RenderForbidden shows a friendly access error page with a message.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	data := pageData{
		Title:   "Access denied",
		Message: msg,
		BackURL: backURL,
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.IsAdmin = u.IsAdmin
		data.UserName = u.Name
	}

	templates.Render(w, r, "error_forbidden", data)
}
