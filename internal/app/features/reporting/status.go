// internal/app/features/reporting/status.go
package reporting

import (
	"net/http"
	"time"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/app/system/inputval"
	"github.com/church611/shepherdview/internal/app/system/whatsapp"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/church611/shepherdview/internal/domain/stats"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// delinquencyDays is how far back a leader may go without reporting
// before showing up on this list.
const delinquencyDays = 14

type reminderLink struct {
	Title string
	URL   string
}

type statusRow struct {
	Leader         models.Leader
	LastReportDate string
	LatestFollowUp *models.FollowUpRecord
	Reminders      []reminderLink
}

type statusData struct {
	formutil.Base

	Scope     stats.Scope
	Threshold string
	Rows      []statusRow
}

// ServeStatus lists the delinquent leaders in scope. Admins see the
// whole church by default and may narrow to their lineage; everyone
// else sees their lineage only.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	me, err := h.Leaders.GetByID(user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load leader failed", err, "Your account could not be loaded.", "/login")
		return
	}

	scope := stats.Scope(query.Get(r, "scope"))
	if !user.IsAdmin {
		scope = stats.ScopeLineage
	} else if scope != stats.ScopeLineage {
		scope = stats.ScopeChurch
	}

	threshold := query.Get(r, "since")
	if !inputval.IsValidDate(threshold) {
		threshold = time.Now().AddDate(0, 0, -delinquencyDays).Format("2006-01-02")
	}

	delinquent := stats.ReportingDelinquency(h.Leaders.List(), threshold, scope, &me)

	rows := make([]statusRow, 0, len(delinquent))
	for _, d := range delinquent {
		rows = append(rows, statusRow{
			Leader:         d.Leader,
			LastReportDate: d.LastReportDate,
			LatestFollowUp: d.LatestFollowUp,
			Reminders:      h.reminderLinks(d.Leader),
		})
	}

	data := statusData{
		Scope:     scope,
		Threshold: threshold,
		Rows:      rows,
	}
	formutil.SetBase(&data.Base, r, "Reporting Status", "/dashboard")

	templates.Render(w, r, "reporting_status", data)
}

// reminderLinks builds one wa.me link per canned template, or nil when
// the leader has no phone number on file.
func (h *Handler) reminderLinks(l models.Leader) []reminderLink {
	if l.PhoneNumber == "" {
		return nil
	}
	out := make([]reminderLink, 0, len(whatsapp.ReminderTemplates))
	for _, t := range whatsapp.ReminderTemplates {
		msg := whatsapp.RenderMessage(t.Text, l.DisplayName(), h.BaseURL)
		out = append(out, reminderLink{
			Title: t.Title,
			URL:   whatsapp.Link(h.WhatsAppCountryCode, l.PhoneNumber, msg),
		})
	}
	return out
}
