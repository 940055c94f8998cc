// internal/domain/stats/weekly.go
package stats

import (
	"sort"

	"github.com/church611/shepherdview/internal/domain/isoweek"
	"github.com/church611/shepherdview/internal/domain/lineage"
	"github.com/church611/shepherdview/internal/domain/models"
)

// Scope selects which leaders feed an aggregate: the whole church or
// the current user's lineage.
type Scope string

const (
	ScopeChurch  Scope = "church"
	ScopeLineage Scope = "lineage"
)

// WeeklyStat is one ISO-week bucket of the attendance rollup.
//
// The group counters count gatherings, not distinct groups: a group
// that met twice in one week contributes two. TotalGroups is therefore
// always OpenGroups + DiscipleGroups and equal to TotalGatherings.
type WeeklyStat struct {
	YearWeek           string
	Range              string
	TotalGroups        int
	OpenGroups         int
	OpenAttendance     int
	DiscipleGroups     int
	DiscipleAttendance int
	TotalGatherings    int
	TotalAttendance    int
}

// scopedLeaders filters all to the scope. Church scope is everyone;
// lineage scope is the user and their descendants (prefix match
// including the user).
func scopedLeaders(all []models.Leader, scope Scope, user *models.Leader) []models.Leader {
	if scope != ScopeLineage || user == nil {
		return all
	}
	return lineage.LineageOf(all, user)
}

// WeeklyRollup buckets every report of every non-deleted group of every
// leader in scope by ISO week, sorted descending by bucket key (most
// recent first).
func WeeklyRollup(all []models.Leader, scope Scope, user *models.Leader) []WeeklyStat {
	buckets := map[string]*WeeklyStat{}
	for _, l := range scopedLeaders(all, scope, user) {
		for _, g := range l.Groups {
			if g.IsDeleted {
				continue
			}
			for _, r := range g.Reports {
				key, ok := isoweek.KeyForDate(r.GatheringDate)
				if !ok {
					continue
				}
				s := buckets[key]
				if s == nil {
					s = &WeeklyStat{YearWeek: key, Range: isoweek.RangeForDate(r.GatheringDate)}
					buckets[key] = s
				}
				s.TotalGatherings++
				s.TotalAttendance += r.AttendanceCount
				if r.Category == models.CategoryOpenCell {
					s.OpenGroups++
					s.OpenAttendance += r.AttendanceCount
				} else {
					s.DiscipleGroups++
					s.DiscipleAttendance += r.AttendanceCount
				}
				s.TotalGroups = s.OpenGroups + s.DiscipleGroups
			}
		}
	}

	out := make([]WeeklyStat, 0, len(buckets))
	for _, s := range buckets {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YearWeek > out[j].YearWeek })
	return out
}

// WindowWeeks maps the dashboard range filters to a bucket count; zero
// means no limit.
func WindowWeeks(filter string) int {
	switch filter {
	case "3m":
		return 12
	case "6m":
		return 26
	case "1y":
		return 52
	default:
		return 0
	}
}

// Window returns the most recent n buckets of stats (all of them when
// n is zero or exceeds the length).
func Window(stats []WeeklyStat, n int) []WeeklyStat {
	if n <= 0 || n >= len(stats) {
		return stats
	}
	return stats[:n]
}

// Growth returns the fractional change from prev to curr, zero when
// prev is zero.
func Growth(curr, prev int) float64 {
	if prev == 0 {
		return 0
	}
	return float64(curr-prev) / float64(prev)
}
