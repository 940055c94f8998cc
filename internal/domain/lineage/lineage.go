// Package lineage holds the pure derivations over the MG-code descent
// rule: leader B descends from leader A iff B's MG code has A's MG code
// as a strict prefix. Tribe roots are the leaders whose MG code is
// exactly two characters.
//
// Hierarchy is never walked through parent pointers here; the prefix
// rule is authoritative and sidesteps any cycle risk from stale
// ParentLeaderID values.
package lineage

import (
	"sort"
	"strings"

	"github.com/church611/shepherdview/internal/domain/models"
)

// IsDescendant reports whether child strictly descends from ancestor
// under the MG prefix rule. A leader is not its own descendant.
func IsDescendant(ancestor, child *models.Leader) bool {
	if ancestor.MGCode == "" {
		return false
	}
	return strings.HasPrefix(child.MGCode, ancestor.MGCode) && len(child.MGCode) > len(ancestor.MGCode)
}

// DescendantsOf returns every leader in all whose MG code strictly
// extends l's MG code.
func DescendantsOf(all []models.Leader, l *models.Leader) []models.Leader {
	var out []models.Leader
	for i := range all {
		if IsDescendant(l, &all[i]) {
			out = append(out, all[i])
		}
	}
	return out
}

// LineageOf returns l together with its descendants: every leader whose
// MG code has l's MG code as a (possibly equal) prefix.
func LineageOf(all []models.Leader, l *models.Leader) []models.Leader {
	if l.MGCode == "" {
		return nil
	}
	var out []models.Leader
	for i := range all {
		if strings.HasPrefix(all[i].MGCode, l.MGCode) {
			out = append(out, all[i])
		}
	}
	return out
}

// HasDescendants reports whether any leader in all descends from l.
func HasDescendants(all []models.Leader, l *models.Leader) bool {
	for i := range all {
		if IsDescendant(l, &all[i]) {
			return true
		}
	}
	return false
}

// TribeRoots returns the leaders whose MG code has length 2, sorted
// ascending by MG code.
func TribeRoots(all []models.Leader) []models.Leader {
	var roots []models.Leader
	for i := range all {
		if len(all[i].MGCode) == 2 {
			roots = append(roots, all[i])
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].MGCode < roots[j].MGCode })
	return roots
}

// DirectChildren returns the leaders whose ParentLeaderID equals l.ID.
// Used where the parent link, not the prefix rule, is the relationship
// being asked about (direct disciples in the AGM evaluation, disciple
// cell rosters).
func DirectChildren(all []models.Leader, l *models.Leader) []models.Leader {
	var out []models.Leader
	for i := range all {
		if all[i].ParentLeaderID == l.ID {
			out = append(out, all[i])
		}
	}
	return out
}
