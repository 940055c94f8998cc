// internal/app/features/members/edit.go
package members

import (
	"errors"
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	memberstore "github.com/church611/shepherdview/internal/app/store/members"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeEdit renders the member form pre-filled from the directory.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, err := h.Members.GetByID(id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "That member could not be found.", "/members")
		return
	}

	data := memberForm{
		ID:           m.ID,
		ChineseName:  m.ChineseName,
		EnglishName:  m.EnglishName,
		PhoneNumber:  m.PhoneNumber,
		Birthday:     m.Birthday,
		MemberID:     m.MemberID,
		Status:       m.Status,
		JoinedDate:   m.JoinedDate,
		GroupIDs:     m.GroupIDs,
		GroupChoices: h.Groups.ListAll(),
		IsEdit:       true,
	}
	formutil.SetBase(&data.Base, r, "Edit Member", "/members")

	templates.Render(w, r, "member_edit", data)
}

// HandleEdit merges the submitted values over the stored member.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/members")
		return
	}

	m := parseMemberForm(r)
	m.ID = id

	updated, err := h.Members.Update(m)
	switch {
	case errors.Is(err, memberstore.ErrMissingRequired):
		h.rerenderMemberForm(w, r, m, id, "Chinese name and phone number are required.")
		return
	case errors.Is(err, memberstore.ErrNotFound):
		uierrors.RenderNotFound(w, r, "That member could not be found.", "/members")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "member update failed", err, "Failed to save the member.", "/members")
		return
	}

	h.AuditLog.MemberUpdated(r, user.ID, user.Name, updated.ID)

	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// HandleDelete removes a member record.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Members.Delete(id); err != nil {
		uierrors.RenderNotFound(w, r, "That member could not be found.", "/members")
		return
	}

	h.AuditLog.MemberDeleted(r, user.ID, user.Name, id)

	http.Redirect(w, r, "/members", http.StatusSeeOther)
}
