// internal/app/features/leaders/delete.go
package leaders

import (
	"errors"
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/navigation"
	"github.com/go-chi/chi/v5"
)

// HandleDelete removes a leader record outright, groups and reports
// included. Soft delete is for groups; leader removal is the admin's
// last resort and the confirm dialog lives client-side.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.Leaders.Delete(id); err != nil {
		if errors.Is(err, leaderstore.ErrNotFound) {
			uierrors.RenderNotFound(w, r, "Leader not found.", "/leaders")
			return
		}
		h.ErrLog.LogServerError(w, r, "leader delete failed", err, "Failed to delete leader.", "/leaders")
		return
	}

	h.AuditLog.LeaderDeleted(r, actor.ID, actor.Name, id)

	ret := navigation.SafeBackURL(r, navigation.LeadersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
