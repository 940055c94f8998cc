// internal/app/features/reporting/followup.go
package reporting

import (
	"net/http"
	"strings"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/htmlsanitize"
	"github.com/go-chi/chi/v5"
)

// HandleAddFollowUp records a follow-up note against a delinquent
// leader straight from the status list.
func (h *Handler) HandleAddFollowUp(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/reporting")
		return
	}

	content := strings.TrimSpace(htmlsanitize.Sanitize(r.FormValue("content")))
	if content == "" {
		uierrors.RenderBadRequest(w, r, "Follow-up content is required.", "/reporting")
		return
	}

	leaderID := chi.URLParam(r, "id")
	if _, err := h.Leaders.AddFollowUp(leaderID, content, leaderstore.Actor{ID: user.ID, Name: user.Name}); err != nil {
		uierrors.RenderNotFound(w, r, "That leader could not be found.", "/reporting")
		return
	}

	h.AuditLog.FollowUpAdded(r, user.ID, user.Name, leaderID)

	http.Redirect(w, r, "/reporting", http.StatusSeeOther)
}
