// internal/app/features/tribes/tribes.go
package tribes

import (
	"net/http"
	"time"

	"github.com/church611/shepherdview/internal/app/system/csvutil"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/domain/stats"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type tribesData struct {
	formutil.Base

	Rows    []stats.TribeRow
	Buckets []int
}

// breakdownBuckets are the generation columns: 1..5 plus the 6+ bucket.
var breakdownBuckets = []int{1, 2, 3, 4, 5, 6}

// ServeTribes renders one row per tribe root with the generation
// breakdown.
func (h *Handler) ServeTribes(w http.ResponseWriter, r *http.Request) {
	data := tribesData{
		Rows:    stats.TribeStatistics(h.Leaders.List()),
		Buckets: breakdownBuckets,
	}
	formutil.SetBase(&data.Base, r, "Tribe Statistics", "/dashboard")

	templates.Render(w, r, "tribe_list", data)
}

// ServeExport streams the tribe table as CSV.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	filename := csvutil.ExportFilename("Tribe_Statistics", time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	rows := stats.TribeStatistics(h.Leaders.List())
	if err := csvutil.WriteTribeStatistics(w, rows); err != nil {
		// Headers are already out; log and stop.
		h.Log.Error("tribe csv export failed", zap.Error(err))
	}
}
