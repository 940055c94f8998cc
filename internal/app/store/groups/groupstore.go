// internal/app/store/groups/groupstore.go
package groupstore

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/church611/shepherdview/internal/app/store/memdb"
	"github.com/church611/shepherdview/internal/domain/models"
)

var (
	// ErrLeaderNotFound is returned when the owning leader does not exist.
	ErrLeaderNotFound = errors.New("leader not found")
	// ErrGroupNotFound is returned when no group has the requested id.
	ErrGroupNotFound = errors.New("group not found")
	// ErrBadCategory is returned for a category outside the closed set.
	ErrBadCategory = errors.New("unknown group category")
	// ErrNotProvisioned is returned when the leader's roles do not allow
	// the requested category.
	ErrNotProvisioned = errors.New("leader's roles do not allow this group category")
	// ErrIncomplete is returned when a formal group is missing required
	// configuration.
	ErrIncomplete = errors.New("day, time, and location are required for this category")
)

// Role capability decides which categories a leader may create. Cell
// leaders (and tribe leaders) get all four; care leaders only the
// informal outreach pair.
var (
	cellLeaderCategories = []models.GroupCategory{
		models.CategoryPreCell, models.CategoryOpenCell,
		models.CategoryRelationship, models.CategoryDiscipleCell,
	}
	careLeaderCategories = []models.GroupCategory{
		models.CategoryPreCell, models.CategoryOpenCell,
	}
)

// AllowedCategories returns the group categories the leader may create,
// in display order. Leaders with neither qualifying role get none.
func AllowedCategories(l *models.Leader) []models.GroupCategory {
	switch {
	case l.IsCellLeader():
		return cellLeaderCategories
	case l.HasRole(models.RoleCareLeader):
		return careLeaderCategories
	default:
		return nil
	}
}

// CanProvision reports whether the leader may create a group of the
// given category.
func CanProvision(l *models.Leader, c models.GroupCategory) bool {
	for _, allowed := range AllowedCategories(l) {
		if allowed == c {
			return true
		}
	}
	return false
}

// AutoName builds the generated group name "{MG} - {label}[ - {suffix}]".
func AutoName(mgCode string, c models.GroupCategory, suffix string) string {
	label, ok := models.CategoryLabels[c]
	if !ok {
		label = string(c)
	}
	name := fmt.Sprintf("%s - %s", mgCode, label)
	if suffix != "" {
		name += " - " + suffix
	}
	return name
}

// DefaultFrequency is the category-driven form default: open cells meet
// weekly, disciple cells biweekly.
func DefaultFrequency(c models.GroupCategory) models.Frequency {
	if c == models.CategoryDiscipleCell {
		return models.EveryOtherWeek
	}
	return models.EveryWeek
}

type Store struct {
	db *memdb.DB
}

func New(db *memdb.DB) *Store {
	return &Store{db: db}
}

// Get returns a group and its owning leader's id.
func (s *Store) Get(groupID string) (models.CellGroup, string, error) {
	var (
		out     models.CellGroup
		ownerID string
		found   bool
	)
	s.db.View(func(st *memdb.State) {
		if owner, g := st.GroupByID(groupID); g != nil {
			out = g.Clone()
			ownerID = owner.ID
			found = true
		}
	})
	if !found {
		return models.CellGroup{}, "", ErrGroupNotFound
	}
	return out, ownerID, nil
}

// ListForLeader returns the leader's non-deleted groups.
func (s *Store) ListForLeader(leaderID string) ([]models.CellGroup, error) {
	var (
		out   []models.CellGroup
		found bool
	)
	s.db.View(func(st *memdb.State) {
		l := st.LeaderByID(leaderID)
		if l == nil {
			return
		}
		found = true
		for _, g := range l.Groups {
			if !g.IsDeleted {
				out = append(out, g.Clone())
			}
		}
	})
	if !found {
		return nil, ErrLeaderNotFound
	}
	return out, nil
}

// ListAll returns every non-deleted group across all leaders.
func (s *Store) ListAll() []models.CellGroup {
	var out []models.CellGroup
	s.db.View(func(st *memdb.State) {
		for i := range st.Leaders {
			for _, g := range st.Leaders[i].Groups {
				if !g.IsDeleted {
					out = append(out, g.Clone())
				}
			}
		}
	})
	return out
}

// Create adds a fully configured group to the leader. The category must
// be provisioned by the leader's roles; formal categories require day,
// time, and location. The group name is always regenerated, and groups
// in the children's zone carry no target audience.
func (s *Store) Create(leaderID string, g models.CellGroup) (models.CellGroup, error) {
	if !models.IsValidCategory(g.Category) {
		return models.CellGroup{}, ErrBadCategory
	}

	var out models.CellGroup
	err := s.db.Update(func(st *memdb.State) error {
		l := st.LeaderByID(leaderID)
		if l == nil {
			return ErrLeaderNotFound
		}
		if !CanProvision(l, g.Category) {
			return ErrNotProvisioned
		}
		if g.Category.IsFormal() && (g.GroupDay == "" || g.GroupTime == "" || g.GroupLocation == "") {
			return ErrIncomplete
		}

		g.ID = uuid.NewString()
		g.TribeCode = l.TribeCode
		g.GroupName = AutoName(l.MGCode, g.Category, g.NameSuffix)
		if g.Frequency == "" {
			g.Frequency = DefaultFrequency(g.Category)
		}
		if g.MaxCapacity == 0 {
			g.MaxCapacity = 12
		}
		if g.PastorZoneID == models.ZoneChildren {
			g.TargetAudience = ""
		}
		if g.Reports == nil {
			g.Reports = []models.Report{}
		}

		l.Groups = append(l.Groups, g)
		out = g.Clone()
		return nil
	})
	if err != nil {
		return models.CellGroup{}, err
	}
	return out, nil
}

// QuickAdd creates an informal group with stock defaults: Saturday
// 14:00 weekly at TBD in the first configured zone, Mixed audience,
// Cantonese.
func (s *Store) QuickAdd(leaderID string, category models.GroupCategory) (models.CellGroup, error) {
	if !models.IsValidCategory(category) {
		return models.CellGroup{}, ErrBadCategory
	}

	var out models.CellGroup
	err := s.db.Update(func(st *memdb.State) error {
		l := st.LeaderByID(leaderID)
		if l == nil {
			return ErrLeaderNotFound
		}
		if !CanProvision(l, category) {
			return ErrNotProvisioned
		}

		g := models.CellGroup{
			ID:                 uuid.NewString(),
			GroupName:          AutoName(l.MGCode, category, ""),
			TribeCode:          l.TribeCode,
			Category:           category,
			GroupDay:           "saturday",
			GroupTime:          "14:00",
			GroupLocation:      "TBD",
			MaxCapacity:        12,
			Frequency:          models.EveryWeek,
			PastorZoneID:       models.Zones[0].Code,
			TargetAudience:     "Mixed",
			Languages:          []string{"Cantonese"},
			Service:            "Sunday Service",
			RegularMemberRange: "4-6",
			AgeRanges:          []string{},
			Reports:            []models.Report{},
		}
		l.Groups = append(l.Groups, g)
		out = g.Clone()
		return nil
	})
	if err != nil {
		return models.CellGroup{}, err
	}
	return out, nil
}

// Update merges an edited group over the stored one. Reports and the
// delete flag are preserved; a category change regenerates the name and
// only affects reports written afterwards.
func (s *Store) Update(groupID string, g models.CellGroup) (models.CellGroup, error) {
	if !models.IsValidCategory(g.Category) {
		return models.CellGroup{}, ErrBadCategory
	}

	var out models.CellGroup
	err := s.db.Update(func(st *memdb.State) error {
		owner, cur := st.GroupByID(groupID)
		if cur == nil {
			return ErrGroupNotFound
		}
		if g.Category.IsFormal() && (g.GroupDay == "" || g.GroupTime == "" || g.GroupLocation == "") {
			return ErrIncomplete
		}
		g.ID = cur.ID
		g.TribeCode = owner.TribeCode
		g.GroupName = AutoName(owner.MGCode, g.Category, g.NameSuffix)
		g.Reports = cur.Reports
		g.IsDeleted = cur.IsDeleted
		if g.MaxCapacity == 0 {
			g.MaxCapacity = cur.MaxCapacity
		}
		if g.CurrentMemberCount == 0 {
			g.CurrentMemberCount = cur.CurrentMemberCount
		}
		if g.PastorZoneID == models.ZoneChildren {
			g.TargetAudience = ""
		}
		*cur = g
		out = cur.Clone()
		return nil
	})
	if err != nil {
		return models.CellGroup{}, err
	}
	return out, nil
}

// SoftDelete hides the group from every listing and aggregate. Its
// reports are retained and there is no undelete.
func (s *Store) SoftDelete(groupID string) error {
	return s.db.Update(func(st *memdb.State) error {
		_, g := st.GroupByID(groupID)
		if g == nil {
			return ErrGroupNotFound
		}
		g.IsDeleted = true
		return nil
	})
}
