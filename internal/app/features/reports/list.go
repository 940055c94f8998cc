// internal/app/features/reports/list.go
package reports

import (
	"net/http"

	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type listData struct {
	formutil.Base

	Group   models.CellGroup
	Reports []models.Report
}

// ServeReportsList shows the group's reports newest first.
func (h *Handler) ServeReportsList(w http.ResponseWriter, r *http.Request) {
	g, _, ok := h.loadOwnedGroup(w, r)
	if !ok {
		return
	}

	list, err := h.Reports.ListForGroup(g.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list reports failed", err, "Reports could not be loaded.", "/groups")
		return
	}

	data := listData{Group: g, Reports: list}
	formutil.SetBase(&data.Base, r, "Reports · "+g.GroupName, "/groups")

	templates.Render(w, r, "report_list", data)
}
