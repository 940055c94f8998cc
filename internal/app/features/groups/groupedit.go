// internal/app/features/groups/groupedit.go
package groups

import (
	"errors"
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	groupstore "github.com/church611/shepherdview/internal/app/store/groups"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// loadOwnedGroup fetches a group and enforces that the current user
// owns it. Admins may edit any group.
func (h *Handler) loadOwnedGroup(w http.ResponseWriter, r *http.Request) (models.CellGroup, *auth.SessionUser, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return models.CellGroup{}, nil, false
	}

	groupID := chi.URLParam(r, "id")
	g, ownerID, err := h.Groups.Get(groupID)
	if err != nil {
		uierrors.RenderNotFound(w, r, "That group could not be found.", "/groups")
		return models.CellGroup{}, nil, false
	}
	if ownerID != user.ID && !user.IsAdmin {
		uierrors.RenderForbidden(w, r, "You can only manage your own groups.", "/groups")
		return models.CellGroup{}, nil, false
	}

	return g, user, true
}

// ServeEditGroup renders the edit form pre-filled from the stored group.
func (h *Handler) ServeEditGroup(w http.ResponseWriter, r *http.Request) {
	g, _, ok := h.loadOwnedGroup(w, r)
	if !ok {
		return
	}

	data := groupFormFrom(g)
	data.Label = models.CategoryLabels[g.Category]
	data.fillOptions()
	data.IsEdit = true
	formutil.SetBase(&data.Base, r, "Edit Group", "/groups")

	templates.Render(w, r, "group_edit", data)
}

// HandleEditGroup applies form changes to an existing group. The
// category is fixed at creation and is not editable here.
func (h *Handler) HandleEditGroup(w http.ResponseWriter, r *http.Request) {
	existing, user, ok := h.loadOwnedGroup(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/groups")
		return
	}

	g := parseGroupForm(r)
	g.Category = existing.Category

	reRender := func(msg string) {
		data := groupFormFrom(g)
		data.ID = existing.ID
		data.Label = models.CategoryLabels[existing.Category]
		data.fillOptions()
		data.IsEdit = true
		formutil.SetBase(&data.Base, r, "Edit Group", "/groups")
		data.SetError(msg)
		templates.Render(w, r, "group_edit", data)
	}

	updated, err := h.Groups.Update(existing.ID, g)
	switch {
	case errors.Is(err, groupstore.ErrIncomplete):
		reRender("Day, time, and location are required for this category.")
		return
	case errors.Is(err, groupstore.ErrGroupNotFound):
		uierrors.RenderNotFound(w, r, "That group could not be found.", "/groups")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "group update failed", err, "Failed to update group.", "/groups")
		return
	}

	h.AuditLog.GroupUpdated(r, user.ID, user.Name, updated.ID)

	http.Redirect(w, r, "/groups", http.StatusSeeOther)
}
