// internal/domain/stats/network.go
package stats

import (
	"sort"

	"github.com/church611/shepherdview/internal/domain/lineage"
	"github.com/church611/shepherdview/internal/domain/models"
)

// GenerationCount is one bar of the leadership-network histogram.
type GenerationCount struct {
	Generation int
	Count      int
}

// NetworkSnapshot summarizes the leadership network for a scope: the
// leader total and a per-generation histogram sorted ascending.
//
// Disabled leaders are counted here; only the delinquency list filters
// them out.
type NetworkSnapshot struct {
	Total       int
	Generations []GenerationCount
}

// LeadershipNetwork computes the snapshot. Church scope counts every
// leader; lineage scope counts strict descendants of the user only (the
// user is excluded, unlike the weekly rollup's lineage scope).
func LeadershipNetwork(all []models.Leader, scope Scope, user *models.Leader) NetworkSnapshot {
	var target []models.Leader
	if scope == ScopeLineage && user != nil {
		target = lineage.DescendantsOf(all, user)
	} else {
		target = all
	}

	counts := map[int]int{}
	for i := range target {
		counts[target[i].Generation]++
	}

	snap := NetworkSnapshot{Total: len(target)}
	for gen, n := range counts {
		snap.Generations = append(snap.Generations, GenerationCount{Generation: gen, Count: n})
	}
	sort.Slice(snap.Generations, func(i, j int) bool {
		return snap.Generations[i].Generation < snap.Generations[j].Generation
	})
	return snap
}
