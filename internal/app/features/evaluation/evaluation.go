// internal/app/features/evaluation/evaluation.go
package evaluation

import (
	"net/http"
	"time"

	"github.com/church611/shepherdview/internal/app/system/csvutil"
	"github.com/church611/shepherdview/internal/app/system/formutil"
	"github.com/church611/shepherdview/internal/domain/stats"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type evaluationData struct {
	formutil.Base

	Year        int
	WindowStart string
	WindowEnd   string
	SortKey     stats.AGMSortKey
	Desc        bool
	Rows        []stats.AGMRow
}

// sortedRows computes and orders the evaluation for the request's sort
// params; both the page and the export go through it so the CSV always
// matches what is on screen.
func (h *Handler) sortedRows(r *http.Request, now time.Time) ([]stats.AGMRow, stats.AGMSortKey, bool) {
	key := stats.AGMSortKey(query.Get(r, "sort"))
	if key == "" {
		key = stats.AGMSortMGCode
	}
	desc := query.Get(r, "dir") == "desc"

	rows := stats.AGMEvaluation(h.Leaders.List(), now)
	stats.SortAGM(rows, key, desc)
	return rows, key, desc
}

// ServeEvaluation renders the evaluation table for the current
// calendar year.
func (h *Handler) ServeEvaluation(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	rows, key, desc := h.sortedRows(r, now)
	start, end := stats.AGMWindow(now.Year())

	data := evaluationData{
		Year:        now.Year(),
		WindowStart: start,
		WindowEnd:   end,
		SortKey:     key,
		Desc:        desc,
		Rows:        rows,
	}
	formutil.SetBase(&data.Base, r, "AGM Evaluation", "/dashboard")

	templates.Render(w, r, "evaluation", data)
}

// ServeExport streams the evaluation as CSV in the on-screen order.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	rows, _, _ := h.sortedRows(r, now)

	filename := csvutil.ExportFilename("AGM_Evaluation", now)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := csvutil.WriteAGMEvaluation(w, rows); err != nil {
		// Headers are already out; log and stop.
		h.Log.Error("agm csv export failed", zap.Error(err))
	}
}
