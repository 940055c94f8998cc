// internal/domain/stats/agm.go
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/church611/shepherdview/internal/domain/lineage"
	"github.com/church611/shepherdview/internal/domain/models"
)

// AGMRow is one evaluated leader in the pastoral (AGM) assessment.
//
// A direct disciple is AGM-mature when they are settled for the
// evaluation window: not ordained, not transferred, and not reinstated
// within it.
type AGMRow struct {
	Leader      models.Leader
	DisplayName string
	DirectCount int
	AGMCount    int
	TotalCount  int // lineage size including the leader
}

// AGMSortKey selects the evaluation table's sort column.
type AGMSortKey string

const (
	AGMSortMGCode     AGMSortKey = "mgCode"
	AGMSortName       AGMSortKey = "displayName"
	AGMSortOrdination AGMSortKey = "ordinationDate"
	AGMSortDirect     AGMSortKey = "directCount"
	AGMSortAGM        AGMSortKey = "agmCount"
	AGMSortTotal      AGMSortKey = "totalCount"
)

// AGMWindow returns the evaluation window for a calendar year:
// 1 January through 1 October, both inclusive, as YYYY-MM-DD bounds.
func AGMWindow(year int) (start, end string) {
	return fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-10-01", year)
}

func inWindow(date, start, end string) bool {
	return date != "" && date >= start && date <= end
}

// agmMature reports whether none of the disciple's settling events fall
// inside the window.
func agmMature(d *models.Leader, start, end string) bool {
	if inWindow(d.OrdinationDate, start, end) {
		return false
	}
	for _, t := range d.TransferHistory {
		if inWindow(t.ChangeDate, start, end) {
			return false
		}
	}
	for _, s := range d.StatusHistory {
		if s.NewStatus == models.StatusActive && inWindow(s.ChangeDate, start, end) {
			return false
		}
	}
	return true
}

// AGMEvaluation scores every active cell or tribe leader for the
// calendar year containing now. Direct disciples are the leader's
// children (by parent link) bearing the cell-leader role.
func AGMEvaluation(all []models.Leader, now time.Time) []AGMRow {
	start, end := AGMWindow(now.Year())

	var rows []AGMRow
	for i := range all {
		l := all[i]
		if l.Status != models.StatusActive || !l.IsCellLeader() {
			continue
		}

		row := AGMRow{Leader: l, DisplayName: evalDisplayName(&l)}
		for _, d := range lineage.DirectChildren(all, &l) {
			if !d.HasRole(models.RoleCellLeader) {
				continue
			}
			row.DirectCount++
			if agmMature(&d, start, end) {
				row.AGMCount++
			}
		}
		row.TotalCount = len(lineage.LineageOf(all, &l))
		rows = append(rows, row)
	}
	return rows
}

// evalDisplayName joins the Chinese and first names the way the
// evaluation table shows them.
func evalDisplayName(l *models.Leader) string {
	name := l.ChineseName
	if l.FirstName != "" {
		if name != "" {
			name += " "
		}
		name += l.FirstName
	}
	return name
}

// SortAGM orders rows by the chosen key, ascending or descending. Ties
// always break by MG code ascending regardless of direction.
func SortAGM(rows []AGMRow, key AGMSortKey, desc bool) {
	cmp := func(a, b AGMRow) int {
		switch key {
		case AGMSortName:
			return strings.Compare(a.DisplayName, b.DisplayName)
		case AGMSortOrdination:
			return strings.Compare(a.Leader.OrdinationDate, b.Leader.OrdinationDate)
		case AGMSortDirect:
			return a.DirectCount - b.DirectCount
		case AGMSortAGM:
			return a.AGMCount - b.AGMCount
		case AGMSortTotal:
			return a.TotalCount - b.TotalCount
		default:
			return strings.Compare(a.Leader.MGCode, b.Leader.MGCode)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		c := cmp(rows[i], rows[j])
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return rows[i].Leader.MGCode < rows[j].Leader.MGCode
	})
}
