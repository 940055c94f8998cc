// internal/app/features/leaders/transfer.go
package leaders

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

type transferData struct {
	formutil.Base

	Leader        models.Leader
	ParentChoices []parentChoice
	NewParentID   string
	Reason        string
}

// ServeTransfer renders the move-leader form. Candidate parents exclude
// the leader and everything below them in the MG lineage.
func (h *Handler) ServeTransfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	leader, err := h.Leaders.GetByID(id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Leader not found.", "/leaders")
		return
	}

	data := transferData{
		Leader:        leader,
		ParentChoices: h.parentChoices(id),
	}
	formutil.SetBase(&data.Base, r, "Transfer Leader", "/leaders/"+id+"/view")

	templates.Render(w, r, "leader_transfer", data)
}

// HandleTransfer moves a leader under a new parent. A reason is
// mandatory; descendants stay where they are.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
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
	newParentID := strings.TrimSpace(r.FormValue("new_parent_id"))
	reason := strings.TrimSpace(r.FormValue("reason"))

	reRender := func(msg string) {
		leader, err := h.Leaders.GetByID(id)
		if err != nil {
			uierrors.RenderNotFound(w, r, "Leader not found.", "/leaders")
			return
		}
		data := transferData{
			Leader:        leader,
			ParentChoices: h.parentChoices(id),
			NewParentID:   newParentID,
			Reason:        reason,
		}
		formutil.SetBase(&data.Base, r, "Transfer Leader", "/leaders/"+id+"/view")
		data.SetError(msg)
		templates.Render(w, r, "leader_transfer", data)
	}

	if newParentID == "" {
		reRender("Please choose a new shepherd.")
		return
	}

	moved, err := h.Leaders.Transfer(id, newParentID, reason, leaderstore.Actor{ID: actor.ID, Name: actor.Name})
	switch {
	case errors.Is(err, leaderstore.ErrReasonRequired):
		reRender("A reason for the transfer is required.")
		return
	case errors.Is(err, leaderstore.ErrNotFound):
		uierrors.RenderNotFound(w, r, "Leader not found.", "/leaders")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "leader transfer failed", err, "Failed to transfer leader.", "/leaders")
		return
	}

	from := ""
	if len(moved.TransferHistory) > 0 {
		from = moved.TransferHistory[0].FromParentName
	}
	h.AuditLog.LeaderTransferred(r, actor.ID, actor.Name, moved.ID, from, moved.ParentLeaderName, reason)

	http.Redirect(w, r, "/leaders/"+id+"/view", http.StatusSeeOther)
}
