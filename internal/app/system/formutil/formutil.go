// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
// - All the context data needed for the form (dropdowns, etc.)
//
// This package provides a Base struct that can be embedded in form data structs
// to handle the common fields, and helper functions to populate them.
//
// Example usage:
//
//	type newLeaderData struct {
//		formutil.Base
//		FirstName string
//		Email     string
//		Parents   []parentOption
//	}
//
//	// In your handler:
//	data := newLeaderData{FirstName: first, Email: email}
//	formutil.SetBase(&data.Base, r, "Add Leader", "/leaders")
//	data.SetError("Email is required.")
//	templates.Render(w, r, "leader_new", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	Title       string
	IsLoggedIn  bool
	IsAdmin     bool
	UserID      string
	UserName    string
	BackURL     string
	CurrentPath string
	Error       template.HTML
}

// SetBase populates the common Base fields from the request context.
// It extracts the signed-in leader from the session and sets navigation fields.
//
// Parameters:
//   - b: pointer to the Base struct to populate
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.Title = title
	if u, ok := auth.CurrentUser(r); ok {
		b.IsLoggedIn = true
		b.IsAdmin = u.IsAdmin
		b.UserID = u.ID
		b.UserName = u.Name
	}
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
}

// SetError sets the error message on a Base struct.
// This is a convenience method for setting Error as template.HTML.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(msg)
}
