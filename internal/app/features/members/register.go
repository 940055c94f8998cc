// internal/app/features/members/register.go
package members

import (
	"errors"
	"net/http"
	"strings"

	memberstore "github.com/church611/shepherdview/internal/app/store/members"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/pantry/templates"
)

type registerData struct {
	formutil.Base

	ChineseName string
	EnglishName string
	PhoneNumber string
	Birthday    string
	MemberID    string

	Done bool
}

// ServeRegister renders the public self-registration form.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	data := registerData{}
	formutil.SetBase(&data.Base, r, "Member Registration", "/")

	templates.Render(w, r, "member_register", data)
}

// HandleRegister creates a member from the public form. No group is
// assigned; a leader enrolls the member later.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/register")
		return
	}

	data := registerData{
		ChineseName: strings.TrimSpace(r.FormValue("chinese_name")),
		EnglishName: strings.TrimSpace(r.FormValue("english_name")),
		PhoneNumber: strings.TrimSpace(r.FormValue("phone_number")),
		Birthday:    strings.TrimSpace(r.FormValue("birthday")),
		MemberID:    strings.TrimSpace(r.FormValue("member_id")),
	}
	formutil.SetBase(&data.Base, r, "Member Registration", "/")

	if !h.RegLimiter.Allow(ratelimit.ClientIP(r)) {
		data.SetError("提交次數過多，請稍後再試。Too many submissions. Please try again later.")
		templates.Render(w, r, "member_register", data)
		return
	}

	m, err := h.Members.SelfRegister(data.ChineseName, data.EnglishName, data.PhoneNumber, data.Birthday, data.MemberID)
	switch {
	case errors.Is(err, memberstore.ErrMissingRequired):
		data.SetError("請填寫中文姓名及電話號碼。")
		templates.Render(w, r, "member_register", data)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "self registration failed", err, "Registration failed. Please try again.", "/register")
		return
	}

	h.AuditLog.MemberSelfRegistered(r, m.ID)

	data.Done = true
	templates.Render(w, r, "member_register", data)
}
