// internal/app/features/leaders/import.go
package leaders

import (
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/app/system/csvutil"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/dalemusser/waffle/pantry/templates"
)

type importData struct {
	formutil.Base
}

type importResultData struct {
	formutil.Base

	Summary leaderstore.ImportSummary
	// ParseErrors are rows the CSV reader rejected before the merge.
	ParseErrors []string
}

// ServeImport renders the CSV upload form.
func (h *Handler) ServeImport(w http.ResponseWriter, r *http.Request) {
	data := importData{}
	formutil.SetBase(&data.Base, r, "Import Leaders", "/leaders")

	templates.Render(w, r, "leader_import", data)
}

// HandleImport parses the uploaded directory CSV and merges it into the
// store: existing leaders are matched by email then member id, new rows
// get fresh ids and a generated default password.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if err := r.ParseMultipartForm(csvutil.MaxUploadSize); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse multipart form failed", err, "Invalid upload.", "/leaders/import")
		return
	}

	file, _, err := r.FormFile("csv_file")
	if err != nil {
		data := importData{}
		formutil.SetBase(&data.Base, r, "Import Leaders", "/leaders")
		data.SetError("Please choose a CSV file to upload.")
		templates.Render(w, r, "leader_import", data)
		return
	}
	defer file.Close()

	rows, parseErrs, err := csvutil.ParseLeaders(file)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "csv parse failed", err, "The file could not be read as CSV.", "/leaders/import")
		return
	}

	summary := h.Leaders.ImportMerge(rows)

	h.AuditLog.LeadersImported(r, actor.ID, actor.Name, summary.New, summary.Updated, len(parseErrs)+len(summary.Errors))

	data := importResultData{Summary: summary, ParseErrors: parseErrs}
	formutil.SetBase(&data.Base, r, "Import Result", "/leaders")

	templates.Render(w, r, "leader_import_result", data)
}
