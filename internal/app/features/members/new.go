// internal/app/features/members/new.go
package members

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	memberstore "github.com/church611/shepherdview/internal/app/store/members"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/app/system/normalize"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// memberForm is the shared new/edit view model.
type memberForm struct {
	formutil.Base

	ID          string
	ChineseName string
	EnglishName string
	PhoneNumber string
	Birthday    string
	MemberID    string
	Status      string
	JoinedDate  string
	GroupIDs    []string

	GroupChoices []models.CellGroup

	IsEdit bool
}

// InGroup drives the enrollment checkboxes on re-render.
func (f memberForm) InGroup(groupID string) bool {
	for _, id := range f.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

// ServeNew renders the empty member form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := memberForm{
		Status:       "active",
		GroupChoices: h.Groups.ListAll(),
	}
	formutil.SetBase(&data.Base, r, "New Member", "/members")

	templates.Render(w, r, "member_new", data)
}

// HandleCreate inserts a directory member.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/members")
		return
	}

	m := parseMemberForm(r)

	created, err := h.Members.Create(m)
	switch {
	case errors.Is(err, memberstore.ErrMissingRequired):
		h.rerenderMemberForm(w, r, m, "", "Chinese name and phone number are required.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "member create failed", err, "Failed to create the member.", "/members")
		return
	}

	h.AuditLog.MemberCreated(r, user.ID, user.Name, created.ID)

	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// parseMemberForm reads the shared new/edit form fields.
func parseMemberForm(r *http.Request) models.CellMember {
	return models.CellMember{
		ChineseName: normalize.Name(r.FormValue("chinese_name")),
		EnglishName: normalize.Name(r.FormValue("english_name")),
		PhoneNumber: normalize.Phone(r.FormValue("phone_number")),
		Birthday:    strings.TrimSpace(r.FormValue("birthday")),
		MemberID:    strings.TrimSpace(r.FormValue("member_id")),
		Status:      strings.TrimSpace(r.FormValue("status")),
		JoinedDate:  strings.TrimSpace(r.FormValue("joined_date")),
		GroupIDs:    append([]string{}, r.Form["group_ids"]...),
	}
}

// rerenderMemberForm echoes the submitted values with an error banner.
// An empty id means the new-member form.
func (h *Handler) rerenderMemberForm(w http.ResponseWriter, r *http.Request, m models.CellMember, id, msg string) {
	data := memberForm{
		ID:           id,
		ChineseName:  m.ChineseName,
		EnglishName:  m.EnglishName,
		PhoneNumber:  m.PhoneNumber,
		Birthday:     m.Birthday,
		MemberID:     m.MemberID,
		Status:       m.Status,
		JoinedDate:   m.JoinedDate,
		GroupIDs:     m.GroupIDs,
		GroupChoices: h.Groups.ListAll(),
		IsEdit:       id != "",
	}

	name := "member_new"
	title := "New Member"
	if data.IsEdit {
		name = "member_edit"
		title = "Edit Member"
	}
	formutil.SetBase(&data.Base, r, title, "/members")
	data.SetError(msg)

	templates.Render(w, r, name, data)
}
