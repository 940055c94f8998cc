// internal/app/features/leaders/followup.go
package leaders

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/htmlsanitize"
	"github.com/go-chi/chi/v5"
)

// HandleAddFollowUp appends a free-text follow-up note to a leader.
// Posted from the detail page and from the reporting delinquency list.
func (h *Handler) HandleAddFollowUp(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/leaders")
		return
	}

	id := chi.URLParam(r, "id")
	content := strings.TrimSpace(htmlsanitize.Sanitize(r.FormValue("content")))

	if content == "" {
		uierrors.RenderBadRequest(w, r, "Follow-up content cannot be empty.", "/leaders/"+id+"/view")
		return
	}

	added, err := h.Leaders.AddFollowUp(id, content, leaderstore.Actor{ID: actor.ID, Name: actor.Name})
	switch {
	case errors.Is(err, leaderstore.ErrNotFound):
		uierrors.RenderNotFound(w, r, "Leader not found.", "/leaders")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "follow-up append failed", err, "Failed to save follow-up.", "/leaders")
		return
	}

	h.AuditLog.FollowUpAdded(r, actor.ID, actor.Name, added.ID)

	http.Redirect(w, r, "/leaders/"+id+"/view", http.StatusSeeOther)
}
