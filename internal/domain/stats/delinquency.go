// internal/domain/stats/delinquency.go
package stats

import (
	"sort"
	"strings"

	"github.com/church611/shepherdview/internal/domain/models"
)

// NeverReported is the label carried by a delinquent leader with no
// reports at all.
const NeverReported = "Never Reported"

// DelinquentLeader is one row of the reporting-status list: an active
// cell or tribe leader whose latest report predates the threshold.
type DelinquentLeader struct {
	Leader models.Leader
	// LastReportDate is the latest gathering date across the leader's
	// non-deleted groups, or NeverReported.
	LastReportDate string
	// LatestFollowUp is the most recent follow-up record, if any, for
	// quick display beside the row.
	LatestFollowUp *models.FollowUpRecord
}

// latestReportDate returns the max gathering date over all reports of
// the leader's non-deleted groups; ok is false when there are none.
func latestReportDate(l *models.Leader) (string, bool) {
	latest := ""
	for _, g := range l.Groups {
		if g.IsDeleted {
			continue
		}
		for _, r := range g.Reports {
			if r.GatheringDate > latest {
				latest = r.GatheringDate
			}
		}
	}
	return latest, latest != ""
}

// ReportingDelinquency lists the leaders in scope who have not reported
// since thresholdDate (YYYY-MM-DD), in MG-code order.
//
// Only active leaders bearing the cell-leader or tribe-leader role are
// considered. Lineage scope keeps the user and their descendants by MG
// prefix.
func ReportingDelinquency(all []models.Leader, thresholdDate string, scope Scope, user *models.Leader) []DelinquentLeader {
	var out []DelinquentLeader
	for i := range all {
		l := all[i]
		if scope == ScopeLineage && user != nil && !strings.HasPrefix(l.MGCode, user.MGCode) {
			continue
		}
		if !l.IsCellLeader() || l.Status != models.StatusActive {
			continue
		}

		latest, ok := latestReportDate(&l)
		if ok && latest >= thresholdDate {
			continue
		}

		row := DelinquentLeader{Leader: l, LastReportDate: NeverReported}
		if ok {
			row.LastReportDate = latest
		}
		if len(l.FollowUpRecords) > 0 {
			// Audit lists are newest-first.
			row.LatestFollowUp = &l.FollowUpRecords[0]
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Leader.MGCode < out[j].Leader.MGCode })
	return out
}
