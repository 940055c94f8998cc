// internal/app/features/leaders/export.go
package leaders

import (
	"net/http"
	"time"

	"github.com/church611/shepherdview/internal/app/system/csvutil"
	"go.uber.org/zap"
)

// ServeExport streams the full leader directory as CSV.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	filename := csvutil.ExportFilename("Leader_Directory_Export", time.Now())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := csvutil.WriteLeaders(w, h.Leaders.List()); err != nil {
		// Headers are already out; log and give up on the stream.
		h.Log.Error("leader export write failed", zap.Error(err))
	}
}

// ServeImportTemplate hands out the one-row sample CSV.
func (h *Handler) ServeImportTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="Cell_Leader_Import_Template.csv"`)

	if err := csvutil.WriteImportTemplate(w); err != nil {
		h.Log.Error("import template write failed", zap.Error(err))
	}
}
