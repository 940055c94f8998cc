// internal/app/features/reports/edit.go
package reports

import (
	"errors"
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	reportstore "github.com/church611/shepherdview/internal/app/store/reports"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// findReport locates a report on the already-authorized group.
func findReport(g models.CellGroup, reportID string) (models.Report, bool) {
	for i := range g.Reports {
		if g.Reports[i].ID == reportID {
			return g.Reports[i], true
		}
	}
	return models.Report{}, false
}

// ServeEditReport renders the check-in form pre-filled from a stored
// report.
func (h *Handler) ServeEditReport(w http.ResponseWriter, r *http.Request) {
	g, _, ok := h.loadOwnedGroup(w, r)
	if !ok {
		return
	}

	reportID := chi.URLParam(r, "reportID")
	rep, found := findReport(g, reportID)
	if !found {
		uierrors.RenderNotFound(w, r, "That report could not be found.", "/groups/"+g.ID+"/reports")
		return
	}

	roster, err := h.Reports.EffectiveRoster(g.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load roster failed", err, "The roster could not be loaded.", "/groups")
		return
	}

	data := reportForm{
		Group:           g,
		ReportID:        rep.ID,
		GatheringDate:   rep.GatheringDate,
		GatheringTime:   rep.GatheringTime,
		AttendanceCount: rep.AttendanceCount,
		NewVisitorCount: rep.NewVisitorCount,
		Notes:           rep.Notes,
		Detailed:        len(rep.AttendedMemberIDs) > 0 || len(rep.Guests) > 0,
		Roster:          roster,
		Attended:        rep.AttendedMemberIDs,
		Guests:          rep.Guests,
		IsEdit:          true,
	}
	formutil.SetBase(&data.Base, r, "Edit Report · "+g.GroupName, "/groups/"+g.ID+"/reports")

	templates.Render(w, r, "report_edit", data)
}

// HandleEditReport replaces a stored report with the submitted values.
func (h *Handler) HandleEditReport(w http.ResponseWriter, r *http.Request) {
	g, user, ok := h.loadOwnedGroup(w, r)
	if !ok {
		return
	}

	reportID := chi.URLParam(r, "reportID")

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/groups")
		return
	}

	rep, detailed := parseReportForm(r)

	_, err := h.Reports.Update(g.ID, reportID, rep, detailed)
	switch {
	case errors.Is(err, reportstore.ErrDateRequired):
		h.rerenderReportForm(w, r, g, rep, detailed, reportID, "A gathering date is required.")
		return
	case errors.Is(err, reportstore.ErrReportNotFound):
		uierrors.RenderNotFound(w, r, "That report could not be found.", "/groups/"+g.ID+"/reports")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "report update failed", err, "Failed to save the report.", "/groups")
		return
	}

	h.AuditLog.ReportUpdated(r, user.ID, user.Name, g.ID, reportID)

	http.Redirect(w, r, "/groups/"+g.ID+"/reports", http.StatusSeeOther)
}
