// internal/app/features/profile/profile.go
package profile

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/app/system/inputval"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// profileData is the view model for the profile page.
type profileData struct {
	formutil.Base

	Leader models.Leader
	Roles  string

	Success template.HTML
}

func (h *Handler) buildProfileData(r *http.Request, leader models.Leader) profileData {
	data := profileData{
		Leader: leader,
		Roles:  strings.Join(leader.Roles, "、"),
	}
	formutil.SetBase(&data.Base, r, "My profile", "/dashboard")
	return data
}

// ServeProfile renders the signed-in leader's profile page.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	leader, err := h.Leaders.GetByID(user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load own profile failed", err, "Your account could not be loaded.", "/")
		return
	}

	data := h.buildProfileData(r, leader)
	switch r.URL.Query().Get("success") {
	case "info":
		data.Success = "Profile updated."
	case "password":
		data.Success = "Password changed successfully."
	}

	templates.Render(w, r, "profile", data)
}

// HandleUpdateInfo saves the editable contact fields and refreshes the
// session snapshot so the header shows the new name immediately.
func (h *Handler) HandleUpdateInfo(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile")
		return
	}

	leader, err := h.Leaders.GetByID(user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load own profile failed", err, "Your account could not be loaded.", "/")
		return
	}

	leader.ChineseName = r.FormValue("chinese_name")
	leader.FirstName = r.FormValue("first_name")
	leader.LastName = r.FormValue("last_name")
	leader.Email = r.FormValue("email")
	leader.PhoneNumber = r.FormValue("phone_number")
	leader.AvatarURL = strings.TrimSpace(r.FormValue("avatar_url"))

	if leader.AvatarURL != "" && !inputval.IsValidHTTPURL(leader.AvatarURL) {
		h.renderProfileWithError(w, r, leader, "Photo URL must be an http or https link.")
		return
	}

	updated, err := h.Leaders.Update(leader)
	switch {
	case errors.Is(err, leaderstore.ErrMissingRequired):
		h.renderProfileWithError(w, r, leader, "Email and English first name are required.")
		return
	case errors.Is(err, leaderstore.ErrDuplicateLogin):
		h.renderProfileWithError(w, r, leader, "Another leader already uses this email.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "profile update failed", err, "Failed to save your profile.", "/profile")
		return
	}

	refreshed := &auth.SessionUser{
		ID:      updated.ID,
		Name:    updated.DisplayName(),
		Email:   updated.Email,
		IsAdmin: updated.IsAdmin,
	}
	if err := h.SessionMgr.RefreshUser(w, r, refreshed); err != nil {
		h.Log.Warn("session refresh after profile save failed", zap.Error(err))
	}

	http.Redirect(w, r, "/profile?success=info", http.StatusSeeOther)
}

// HandleChangePassword processes the password change form.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile")
		return
	}

	leader, err := h.Leaders.GetByID(user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load own profile failed", err, "Your account could not be loaded.", "/")
		return
	}

	current := r.FormValue("current_password")
	newPass := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	if bcrypt.CompareHashAndPassword([]byte(leader.PasswordHash), []byte(current)) != nil {
		h.renderProfileWithError(w, r, leader, "Current password is incorrect.")
		return
	}
	if len(newPass) < 6 {
		h.renderProfileWithError(w, r, leader, "新密碼必須至少為 6 個字元")
		return
	}
	if newPass != confirm {
		h.renderProfileWithError(w, r, leader, "兩次輸入的密碼不一致")
		return
	}
	if newPass == current {
		h.renderProfileWithError(w, r, leader, "New password cannot be the same as your current password.")
		return
	}

	if err := h.Leaders.SetPassword(leader.ID, newPass); err != nil {
		h.ErrLog.LogServerError(w, r, "password change failed", err, "Failed to update password.", "/profile")
		return
	}

	h.AuditLog.PasswordChanged(r, leader.ID)

	http.Redirect(w, r, "/profile?success=password", http.StatusSeeOther)
}

func (h *Handler) renderProfileWithError(w http.ResponseWriter, r *http.Request, leader models.Leader, msg string) {
	data := h.buildProfileData(r, leader)
	data.SetError(msg)
	templates.Render(w, r, "profile", data)
}
