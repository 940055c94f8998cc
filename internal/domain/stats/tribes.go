// internal/domain/stats/tribes.go
package stats

import (
	"github.com/church611/shepherdview/internal/domain/lineage"
	"github.com/church611/shepherdview/internal/domain/models"
)

// TribeRow aggregates one tribe: the sub-tree rooted at a leader whose
// MG code has length 2.
type TribeRow struct {
	Root             models.Leader
	TribeName        string
	TribeCode        string
	TotalDescendants int // lineage size including the root
	MaleCount        int
	FemaleCount      int
	MaxGeneration    int
	// GenerationBreakdown[g] is the number of lineage leaders at
	// generation g. Display groups 1..5 individually and 6+ together.
	GenerationBreakdown map[int]int
}

// BreakdownBucket returns the display count for a breakdown column:
// generations 1 through 5 map directly, 6 returns everything at
// generation 6 or deeper.
func (t TribeRow) BreakdownBucket(gen int) int {
	if gen < 6 {
		return t.GenerationBreakdown[gen]
	}
	n := 0
	for g, c := range t.GenerationBreakdown {
		if g >= 6 {
			n += c
		}
	}
	return n
}

// TribeStatistics computes one row per tribe root, in MG-code order.
// Disabled leaders are included in the tallies.
func TribeStatistics(all []models.Leader) []TribeRow {
	roots := lineage.TribeRoots(all)
	rows := make([]TribeRow, 0, len(roots))
	for i := range roots {
		root := roots[i]
		row := TribeRow{
			Root:                root,
			TribeName:           root.DisplayName(),
			TribeCode:           root.MGCode,
			MaxGeneration:       root.Generation,
			GenerationBreakdown: map[int]int{},
		}
		for _, d := range lineage.LineageOf(all, &root) {
			row.TotalDescendants++
			row.GenerationBreakdown[d.Generation]++
			if d.Generation > row.MaxGeneration {
				row.MaxGeneration = d.Generation
			}
			switch d.Gender {
			case "Male":
				row.MaleCount++
			case "Female":
				row.FemaleCount++
			}
		}
		rows = append(rows, row)
	}
	return rows
}
