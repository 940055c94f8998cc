// internal/app/features/leaders/status.go
package leaders

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/normalize"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// HandleChangeStatus disables or reinstates an account. The form is
// posted from the leader detail page; a reason is mandatory.
func (h *Handler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
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
	to := models.AccountStatus(normalize.Status(r.FormValue("status")))
	reason := strings.TrimSpace(r.FormValue("reason"))

	changed, err := h.Leaders.ChangeStatus(id, to, reason, leaderstore.Actor{ID: actor.ID, Name: actor.Name})
	switch {
	case errors.Is(err, leaderstore.ErrReasonRequired):
		uierrors.RenderBadRequest(w, r, "A reason for the status change is required.", "/leaders/"+id+"/view")
		return
	case errors.Is(err, leaderstore.ErrBadStatus):
		uierrors.RenderBadRequest(w, r, "Unknown account status.", "/leaders/"+id+"/view")
		return
	case errors.Is(err, leaderstore.ErrNotFound):
		uierrors.RenderNotFound(w, r, "Leader not found.", "/leaders")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "status change failed", err, "Failed to change account status.", "/leaders")
		return
	}

	from := ""
	if len(changed.StatusHistory) > 0 {
		from = string(changed.StatusHistory[0].OldStatus)
	}
	h.AuditLog.LeaderStatusChanged(r, actor.ID, actor.Name, changed.ID, from, string(to), reason)

	http.Redirect(w, r, "/leaders/"+id+"/view", http.StatusSeeOther)
}
