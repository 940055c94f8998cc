// internal/app/features/reports/new.go
package reports

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	reportstore "github.com/church611/shepherdview/internal/app/store/reports"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/app/system/htmlsanitize"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// reportForm is the shared new/edit view model for the check-in form.
type reportForm struct {
	formutil.Base

	Group    models.CellGroup
	ReportID string

	GatheringDate   string
	GatheringTime   string
	AttendanceCount int
	NewVisitorCount int
	Notes           string
	Detailed        bool

	Roster   []models.RosterEntry
	Attended []string
	Guests   []models.GuestRecord

	IsEdit bool
}

// HasAttended drives checkbox state for the roster on re-render.
func (f reportForm) HasAttended(id string) bool {
	for _, a := range f.Attended {
		if a == id {
			return true
		}
	}
	return false
}

// ServeNewReport renders the check-in form with the suggested next
// gathering date and the group's effective roster. A quick-added
// member arrives back here pre-checked via the attended query param.
func (h *Handler) ServeNewReport(w http.ResponseWriter, r *http.Request) {
	g, _, ok := h.loadOwnedGroup(w, r)
	if !ok {
		return
	}

	date, timeOfDay, err := h.Reports.NextGatheringDefault(g.ID, time.Now())
	if err != nil {
		uierrors.RenderNotFound(w, r, "That group could not be found.", "/groups")
		return
	}
	if d := query.Get(r, "date"); d != "" {
		date = d
	}
	if t := query.Get(r, "time"); t != "" {
		timeOfDay = t
	}

	roster, err := h.Reports.EffectiveRoster(g.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load roster failed", err, "The roster could not be loaded.", "/groups")
		return
	}

	data := reportForm{
		Group:         g,
		GatheringDate: date,
		GatheringTime: timeOfDay,
		Roster:        roster,
	}
	if attended := query.Get(r, "attended"); attended != "" {
		data.Attended = strings.Split(attended, ",")
		data.Detailed = true
	}
	formutil.SetBase(&data.Base, r, "New Report · "+g.GroupName, "/groups/"+g.ID+"/reports")

	templates.Render(w, r, "report_new", data)
}

// HandleSubmitReport records a gathering report for the group.
func (h *Handler) HandleSubmitReport(w http.ResponseWriter, r *http.Request) {
	g, user, ok := h.loadOwnedGroup(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/groups")
		return
	}

	rep, detailed := parseReportForm(r)

	submitted, err := h.Reports.Submit(g.ID, rep, detailed)
	switch {
	case errors.Is(err, reportstore.ErrDateRequired):
		h.rerenderReportForm(w, r, g, rep, detailed, "", "A gathering date is required.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "report submit failed", err, "Failed to save the report.", "/groups")
		return
	}

	h.AuditLog.ReportSubmitted(r, user.ID, user.Name, g.ID, submitted.GatheringDate)

	http.Redirect(w, r, "/groups/"+g.ID+"/reports", http.StatusSeeOther)
}

// parseReportForm reads the check-in form. Detailed tracking derives
// the attendance count in the store; otherwise the scalar stands.
func parseReportForm(r *http.Request) (models.Report, bool) {
	attendance, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("attendance_count")))
	visitors, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("new_visitor_count")))

	rep := models.Report{
		GatheringDate:   strings.TrimSpace(r.FormValue("gathering_date")),
		GatheringTime:   strings.TrimSpace(r.FormValue("gathering_time")),
		AttendanceCount: attendance,
		NewVisitorCount: visitors,
		Notes:           strings.TrimSpace(htmlsanitize.Sanitize(r.FormValue("notes"))),
	}

	detailed := r.FormValue("detailed") == "1"
	if detailed {
		rep.AttendedMemberIDs = append([]string{}, r.Form["attended"]...)
		names := r.Form["guest_name"]
		phones := r.Form["guest_phone"]
		for i, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			guest := models.GuestRecord{ID: uuid.NewString(), Name: name}
			if i < len(phones) {
				guest.Phone = strings.TrimSpace(phones[i])
			}
			rep.Guests = append(rep.Guests, guest)
		}
	}

	return rep, detailed
}

// rerenderReportForm echoes the submitted values with an error banner.
// An empty reportID means the new-report form.
func (h *Handler) rerenderReportForm(w http.ResponseWriter, r *http.Request, g models.CellGroup, rep models.Report, detailed bool, reportID, msg string) {
	roster, _ := h.Reports.EffectiveRoster(g.ID)

	data := reportForm{
		Group:           g,
		ReportID:        reportID,
		GatheringDate:   rep.GatheringDate,
		GatheringTime:   rep.GatheringTime,
		AttendanceCount: rep.AttendanceCount,
		NewVisitorCount: rep.NewVisitorCount,
		Notes:           rep.Notes,
		Detailed:        detailed,
		Roster:          roster,
		Attended:        rep.AttendedMemberIDs,
		Guests:          rep.Guests,
		IsEdit:          reportID != "",
	}

	name := "report_new"
	title := "New Report · " + g.GroupName
	if data.IsEdit {
		name = "report_edit"
		title = "Edit Report · " + g.GroupName
	}
	formutil.SetBase(&data.Base, r, title, "/groups/"+g.ID+"/reports")
	data.SetError(msg)

	templates.Render(w, r, name, data)
}
