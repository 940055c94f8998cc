package stats

import (
	"testing"

	"github.com/church611/shepherdview/internal/domain/models"
)

func TestLeadershipNetwork_ChurchScope(t *testing.T) {
	all := []models.Leader{
		{ID: "a", MGCode: "GJ", Generation: 1},
		{ID: "b", MGCode: "GJ1", Generation: 2},
		{ID: "c", MGCode: "GJ2", Generation: 2},
		{ID: "d", MGCode: "MY", Generation: 1, Status: models.StatusDisabled},
	}

	snap := LeadershipNetwork(all, ScopeChurch, nil)
	if snap.Total != 4 {
		t.Errorf("total: got %d", snap.Total)
	}
	if len(snap.Generations) != 2 {
		t.Fatalf("generations: got %d", len(snap.Generations))
	}
	if snap.Generations[0].Generation != 1 || snap.Generations[0].Count != 2 {
		t.Errorf("gen 1: %+v", snap.Generations[0])
	}
	if snap.Generations[1].Generation != 2 || snap.Generations[1].Count != 2 {
		t.Errorf("gen 2: %+v", snap.Generations[1])
	}
}

func TestLeadershipNetwork_LineageExcludesUser(t *testing.T) {
	user := models.Leader{ID: "a", MGCode: "GJ", Generation: 1}
	all := []models.Leader{
		user,
		{ID: "b", MGCode: "GJ1", Generation: 2},
		{ID: "c", MGCode: "MY", Generation: 1},
	}

	snap := LeadershipNetwork(all, ScopeLineage, &user)
	if snap.Total != 1 {
		t.Errorf("lineage total must exclude the user, got %d", snap.Total)
	}
	if len(snap.Generations) != 1 || snap.Generations[0].Generation != 2 {
		t.Errorf("generations: %+v", snap.Generations)
	}
}
