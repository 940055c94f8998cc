// internal/app/features/groups/groupdelete.go
package groups

import (
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
)

// HandleDeleteGroup soft-deletes a group. The group disappears from
// lists but its submitted reports stay in the historical record.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	g, user, ok := h.loadOwnedGroup(w, r)
	if !ok {
		return
	}

	if err := h.Groups.SoftDelete(g.ID); err != nil {
		uierrors.RenderNotFound(w, r, "That group could not be found.", "/groups")
		return
	}

	h.AuditLog.GroupDeleted(r, user.ID, user.Name, g.ID, g.GroupName)

	http.Redirect(w, r, "/groups", http.StatusSeeOther)
}
