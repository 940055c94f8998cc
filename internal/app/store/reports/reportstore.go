// Package reportstore owns the attendance reports embedded in each
// group: submission, edits, hard deletes, the suggested next gathering
// date, and the effective check-in roster.
package reportstore

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/church611/shepherdview/internal/app/store/memdb"
	"github.com/church611/shepherdview/internal/domain/models"
)

var (
	// ErrGroupNotFound is returned when no group has the requested id.
	ErrGroupNotFound = errors.New("group not found")
	// ErrReportNotFound is returned when the group holds no such report.
	ErrReportNotFound = errors.New("report not found")
	// ErrDateRequired is returned when a report arrives without a
	// gathering date.
	ErrDateRequired = errors.New("gathering date is required")
)

type Store struct {
	db *memdb.DB
}

func New(db *memdb.DB) *Store {
	return &Store{db: db}
}

// NextGatheringDefault suggests the date and time for a new report:
// the latest report's date plus the group's gap (7 or 14 days), with
// the latest report's time. With no prior reports it suggests today at
// the group's configured time.
func (s *Store) NextGatheringDefault(groupID string, now time.Time) (date, timeOfDay string, err error) {
	var (
		found bool
		last  *models.Report
		gap   int
		gtime string
	)
	s.db.View(func(st *memdb.State) {
		_, g := st.GroupByID(groupID)
		if g == nil {
			return
		}
		found = true
		gap = g.Frequency.GapDays()
		gtime = g.GroupTime
		for i := range g.Reports {
			if last == nil || g.Reports[i].GatheringDate > last.GatheringDate {
				r := g.Reports[i].Clone()
				last = &r
			}
		}
	})
	if !found {
		return "", "", ErrGroupNotFound
	}
	if last == nil {
		return now.Format("2006-01-02"), gtime, nil
	}

	t, perr := time.Parse("2006-01-02", last.GatheringDate)
	if perr != nil {
		return now.Format("2006-01-02"), gtime, nil
	}
	suggestedTime := last.GatheringTime
	if suggestedTime == "" {
		suggestedTime = gtime
	}
	return t.AddDate(0, 0, gap).Format("2006-01-02"), suggestedTime, nil
}

// Submit appends a report to the group. The category is snapshotted
// from the group at commit time. When detailed check-in was used the
// attendance count is derived as members + guests + 1 for the leader;
// otherwise the supplied scalar is authoritative.
func (s *Store) Submit(groupID string, r models.Report, detailed bool) (models.Report, error) {
	if r.GatheringDate == "" {
		return models.Report{}, ErrDateRequired
	}

	var out models.Report
	err := s.db.Update(func(st *memdb.State) error {
		_, g := st.GroupByID(groupID)
		if g == nil {
			return ErrGroupNotFound
		}
		r.ID = uuid.NewString()
		r.Category = g.Category
		if detailed {
			r.AttendanceCount = len(r.AttendedMemberIDs) + len(r.Guests) + 1
		}
		if r.Notes == "" {
			r.Notes = "-"
		}
		g.Reports = append(g.Reports, r)
		out = r.Clone()
		return nil
	})
	if err != nil {
		return models.Report{}, err
	}
	return out, nil
}

// Update replaces an existing report in place, re-snapshotting the
// category from the current group.
func (s *Store) Update(groupID, reportID string, r models.Report, detailed bool) (models.Report, error) {
	if r.GatheringDate == "" {
		return models.Report{}, ErrDateRequired
	}

	var out models.Report
	err := s.db.Update(func(st *memdb.State) error {
		_, g := st.GroupByID(groupID)
		if g == nil {
			return ErrGroupNotFound
		}
		for i := range g.Reports {
			if g.Reports[i].ID == reportID {
				r.ID = reportID
				r.Category = g.Category
				if detailed {
					r.AttendanceCount = len(r.AttendedMemberIDs) + len(r.Guests) + 1
				}
				if r.Notes == "" {
					r.Notes = "-"
				}
				g.Reports[i] = r
				out = r.Clone()
				return nil
			}
		}
		return ErrReportNotFound
	})
	if err != nil {
		return models.Report{}, err
	}
	return out, nil
}

// Delete hard-removes a report from its group.
func (s *Store) Delete(groupID, reportID string) error {
	return s.db.Update(func(st *memdb.State) error {
		_, g := st.GroupByID(groupID)
		if g == nil {
			return ErrGroupNotFound
		}
		for i := range g.Reports {
			if g.Reports[i].ID == reportID {
				g.Reports = append(g.Reports[:i], g.Reports[i+1:]...)
				return nil
			}
		}
		return ErrReportNotFound
	})
}

// ListForGroup returns the group's reports sorted newest first.
func (s *Store) ListForGroup(groupID string) ([]models.Report, error) {
	var (
		out   []models.Report
		found bool
	)
	s.db.View(func(st *memdb.State) {
		_, g := st.GroupByID(groupID)
		if g == nil {
			return
		}
		found = true
		for i := range g.Reports {
			out = append(out, g.Reports[i].Clone())
		}
	})
	if !found {
		return nil, ErrGroupNotFound
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GatheringDate > out[j].GatheringDate
	})
	return out, nil
}

// EffectiveRoster builds the check-in list for a group. Open cells list
// the members enrolled in the group. Disciple cells additionally
// inject the owner's direct descendants who are cell leaders or
// co-workers as leader-tagged rows, deduplicated by id. The member
// table is never mutated.
func (s *Store) EffectiveRoster(groupID string) ([]models.RosterEntry, error) {
	var (
		out   []models.RosterEntry
		found bool
	)
	s.db.View(func(st *memdb.State) {
		owner, g := st.GroupByID(groupID)
		if g == nil {
			return
		}
		found = true

		seen := map[string]bool{}
		for i := range st.Members {
			m := &st.Members[i]
			if !m.InGroup(groupID) {
				continue
			}
			out = append(out, models.RosterEntry{
				ID:          m.ID,
				ChineseName: m.ChineseName,
				EnglishName: m.EnglishName,
				PhoneNumber: m.PhoneNumber,
				JoinedDate:  m.JoinedDate,
			})
			seen[m.ID] = true
		}

		if g.Category != models.CategoryDiscipleCell {
			return
		}
		for i := range st.Leaders {
			d := &st.Leaders[i]
			if d.ParentLeaderID != owner.ID || seen[d.ID] {
				continue
			}
			if !d.HasRole(models.RoleCellLeader) && !d.HasRole(models.RoleCoWorker) {
				continue
			}
			out = append(out, models.RosterEntry{
				ID:          d.ID,
				ChineseName: d.ChineseName,
				EnglishName: d.FirstName,
				PhoneNumber: d.PhoneNumber,
				JoinedDate:  d.OrdinationDate,
				IsLeader:    true,
			})
			seen[d.ID] = true
		}
	})
	if !found {
		return nil, ErrGroupNotFound
	}
	return out, nil
}
