package home

import (
	"net/http"

	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		Log: logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot shows the public landing page. Signed-in shepherds go
// straight to their dashboard.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := struct {
		formutil.Base
	}{}
	formutil.SetBase(&data.Base, r, "Welcome", "/")

	templates.Render(w, r, "home", data)
}
