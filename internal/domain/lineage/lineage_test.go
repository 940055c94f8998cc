package lineage

import (
	"testing"

	"github.com/church611/shepherdview/internal/domain/models"
)

func network() []models.Leader {
	return []models.Leader{
		{ID: "a", MGCode: "GJ"},
		{ID: "b", MGCode: "GJ1", ParentLeaderID: "a"},
		{ID: "c", MGCode: "GJ12", ParentLeaderID: "b"},
		{ID: "d", MGCode: "MY"},
		{ID: "e", MGCode: "MY1", ParentLeaderID: "d"},
		{ID: "f", MGCode: ""}, // co-worker without leadership identity
	}
}

func TestIsDescendant(t *testing.T) {
	all := network()
	gj, gj1, gj12, my := &all[0], &all[1], &all[2], &all[3]

	if !IsDescendant(gj, gj1) || !IsDescendant(gj, gj12) {
		t.Error("GJ1 and GJ12 descend from GJ")
	}
	if IsDescendant(gj, gj) {
		t.Error("a leader is not its own descendant")
	}
	if IsDescendant(gj, my) || IsDescendant(my, gj1) {
		t.Error("cross-tribe descent")
	}
	if IsDescendant(&all[5], gj1) {
		t.Error("an empty MG code has no descendants")
	}
}

func TestDescendantsOf(t *testing.T) {
	all := network()
	got := DescendantsOf(all, &all[0])
	if len(got) != 2 {
		t.Fatalf("GJ descendants: got %d", len(got))
	}
	for _, d := range got {
		if d.MGCode != "GJ1" && d.MGCode != "GJ12" {
			t.Errorf("unexpected descendant %s", d.MGCode)
		}
	}
}

func TestLineageOf_IncludesSelf(t *testing.T) {
	all := network()
	got := LineageOf(all, &all[1])
	if len(got) != 2 {
		t.Fatalf("GJ1 lineage: got %d", len(got))
	}
	if got[0].MGCode != "GJ1" && got[1].MGCode != "GJ1" {
		t.Error("lineage must include the leader itself")
	}

	if got := LineageOf(all, &all[5]); got != nil {
		t.Error("empty MG code yields no lineage")
	}
}

func TestTribeRoots_SortedByMGCode(t *testing.T) {
	all := network()
	roots := TribeRoots(all)
	if len(roots) != 2 {
		t.Fatalf("got %d roots", len(roots))
	}
	if roots[0].MGCode != "GJ" || roots[1].MGCode != "MY" {
		t.Errorf("order: %s, %s", roots[0].MGCode, roots[1].MGCode)
	}
}

func TestDirectChildren_UsesParentLink(t *testing.T) {
	all := network()
	got := DirectChildren(all, &all[0])
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("GJ direct children: %+v", got)
	}
	// GJ12 descends from GJ by prefix but is not a direct child.
	for _, c := range got {
		if c.ID == "c" {
			t.Error("grandchild reported as direct child")
		}
	}
}
