// internal/app/features/reports/checkin.go
package reports

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	memberstore "github.com/church611/shepherdview/internal/app/store/members"
)

// HandleQuickAddMember creates a member mid check-in and bounces back
// to the new-report form with the member pre-checked as attended. The
// in-flight date and selection travel through query params.
func (h *Handler) HandleQuickAddMember(w http.ResponseWriter, r *http.Request) {
	g, user, ok := h.loadOwnedGroup(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/groups")
		return
	}

	m, err := h.Members.QuickAdd(
		g.ID,
		r.FormValue("chinese_name"),
		r.FormValue("english_name"),
		r.FormValue("phone_number"),
	)
	switch {
	case errors.Is(err, memberstore.ErrMissingRequired):
		uierrors.RenderBadRequest(w, r, "Chinese name and phone number are required.", "/groups/"+g.ID+"/reports/new")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "member quick-add failed", err, "Failed to add the member.", "/groups")
		return
	}

	h.AuditLog.MemberCreated(r, user.ID, user.Name, m.ID)

	attended := append([]string{}, r.Form["attended"]...)
	attended = append(attended, m.ID)

	q := url.Values{}
	q.Set("attended", strings.Join(attended, ","))
	if d := strings.TrimSpace(r.FormValue("gathering_date")); d != "" {
		q.Set("date", d)
	}
	if t := strings.TrimSpace(r.FormValue("gathering_time")); t != "" {
		q.Set("time", t)
	}

	http.Redirect(w, r, "/groups/"+g.ID+"/reports/new?"+q.Encode(), http.StatusSeeOther)
}
