package stats

import (
	"testing"

	"github.com/church611/shepherdview/internal/domain/models"
)

func tribeNetwork() []models.Leader {
	return []models.Leader{
		{ID: "a", MGCode: "GJ", ChineseName: "王O勝", Generation: 1, Gender: "Male"},
		{ID: "b", MGCode: "GJ1", Generation: 2, Gender: "Female"},
		{ID: "c", MGCode: "GJ11", Generation: 3, Gender: "Female"},
		{ID: "d", MGCode: "MY", Generation: 1, Gender: "Male", Status: models.StatusDisabled},
	}
}

func TestTribeStatistics(t *testing.T) {
	rows := TribeStatistics(tribeNetwork())
	if len(rows) != 2 {
		t.Fatalf("expected 2 tribes, got %d", len(rows))
	}

	gj := rows[0]
	if gj.TribeCode != "GJ" {
		t.Fatalf("order: first tribe is %s", gj.TribeCode)
	}
	if gj.TotalDescendants != 3 {
		t.Errorf("GJ size: got %d", gj.TotalDescendants)
	}
	if gj.MaleCount != 1 || gj.FemaleCount != 2 {
		t.Errorf("GJ gender split: %d male, %d female", gj.MaleCount, gj.FemaleCount)
	}
	if gj.MaxGeneration != 3 {
		t.Errorf("GJ max generation: got %d", gj.MaxGeneration)
	}
	if gj.GenerationBreakdown[2] != 1 {
		t.Errorf("GJ gen-2 count: got %d", gj.GenerationBreakdown[2])
	}

	// Disabled leaders still count in tribe tallies.
	my := rows[1]
	if my.TotalDescendants != 1 {
		t.Errorf("MY size: got %d", my.TotalDescendants)
	}
}

func TestBreakdownBucket_GroupsSixPlus(t *testing.T) {
	row := TribeRow{GenerationBreakdown: map[int]int{1: 1, 5: 2, 6: 3, 7: 4, 9: 1}}

	if got := row.BreakdownBucket(5); got != 2 {
		t.Errorf("gen 5: got %d", got)
	}
	if got := row.BreakdownBucket(6); got != 8 {
		t.Errorf("gen 6+ should sum 6 and deeper, got %d", got)
	}
	if got := row.BreakdownBucket(2); got != 0 {
		t.Errorf("missing generation: got %d", got)
	}
}
