// internal/app/features/reports/delete.go
package reports

import (
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	"github.com/go-chi/chi/v5"
)

// HandleDeleteReport hard-removes a report from its group.
func (h *Handler) HandleDeleteReport(w http.ResponseWriter, r *http.Request) {
	g, user, ok := h.loadOwnedGroup(w, r)
	if !ok {
		return
	}

	reportID := chi.URLParam(r, "reportID")
	if err := h.Reports.Delete(g.ID, reportID); err != nil {
		uierrors.RenderNotFound(w, r, "That report could not be found.", "/groups/"+g.ID+"/reports")
		return
	}

	h.AuditLog.ReportDeleted(r, user.ID, user.Name, g.ID, reportID)

	http.Redirect(w, r, "/groups/"+g.ID+"/reports", http.StatusSeeOther)
}
