// Package memberstore owns flock member records: CRUD, the check-in
// quick-add, and public self registration.
package memberstore

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/church611/shepherdview/internal/app/store/memdb"
	"github.com/church611/shepherdview/internal/app/system/normalize"
	"github.com/church611/shepherdview/internal/domain/models"
)

var (
	// ErrNotFound is returned when no member has the requested id.
	ErrNotFound = errors.New("member not found")
	// ErrMissingRequired is returned when Chinese name or phone is empty.
	ErrMissingRequired = errors.New("chinese name and phone number are required")
)

type Store struct {
	db *memdb.DB
}

func New(db *memdb.DB) *Store {
	return &Store{db: db}
}

// List returns a deep copy of every member.
func (s *Store) List() []models.CellMember {
	return s.db.Snapshot().Members
}

// GetByID loads one member by id.
func (s *Store) GetByID(id string) (models.CellMember, error) {
	var (
		out   models.CellMember
		found bool
	)
	s.db.View(func(st *memdb.State) {
		if m := st.MemberByID(id); m != nil {
			out = m.Clone()
			found = true
		}
	})
	if !found {
		return models.CellMember{}, ErrNotFound
	}
	return out, nil
}

// ListForGroup returns the members enrolled in the given group.
func (s *Store) ListForGroup(groupID string) []models.CellMember {
	var out []models.CellMember
	s.db.View(func(st *memdb.State) {
		for i := range st.Members {
			if st.Members[i].InGroup(groupID) {
				out = append(out, st.Members[i].Clone())
			}
		}
	})
	return out
}

// Create inserts a new member. Chinese name and phone are required;
// status defaults to active and the joined date to today.
func (s *Store) Create(m models.CellMember) (models.CellMember, error) {
	m.ChineseName = normalize.Name(m.ChineseName)
	m.PhoneNumber = normalize.Phone(m.PhoneNumber)
	if m.ChineseName == "" || m.PhoneNumber == "" {
		return models.CellMember{}, ErrMissingRequired
	}

	m.ID = uuid.NewString()
	if m.Status == "" {
		m.Status = "active"
	}
	if m.JoinedDate == "" {
		m.JoinedDate = today()
	}
	if m.GroupIDs == nil {
		m.GroupIDs = []string{}
	}

	s.db.Update(func(st *memdb.State) error {
		st.Members = append(st.Members, m)
		return nil
	})
	return m, nil
}

// QuickAdd creates a member mid check-in, enrolled in the given group
// and joined today. The caller marks them attended on the open report.
func (s *Store) QuickAdd(groupID, chineseName, englishName, phoneNumber string) (models.CellMember, error) {
	return s.Create(models.CellMember{
		ChineseName: chineseName,
		EnglishName: englishName,
		PhoneNumber: phoneNumber,
		Status:      "active",
		GroupIDs:    []string{groupID},
		JoinedDate:  today(),
	})
}

// SelfRegister creates a member from the public registration form. No
// group is assigned; a leader enrolls them later.
func (s *Store) SelfRegister(chineseName, englishName, phoneNumber, birthday, memberID string) (models.CellMember, error) {
	return s.Create(models.CellMember{
		ChineseName: chineseName,
		EnglishName: englishName,
		PhoneNumber: phoneNumber,
		Birthday:    birthday,
		MemberID:    memberID,
		Status:      "active",
		GroupIDs:    []string{},
	})
}

// Update merges an edited member over the stored one by id.
func (s *Store) Update(m models.CellMember) (models.CellMember, error) {
	m.ChineseName = normalize.Name(m.ChineseName)
	m.PhoneNumber = normalize.Phone(m.PhoneNumber)
	if m.ChineseName == "" || m.PhoneNumber == "" {
		return models.CellMember{}, ErrMissingRequired
	}

	var out models.CellMember
	err := s.db.Update(func(st *memdb.State) error {
		cur := st.MemberByID(m.ID)
		if cur == nil {
			return ErrNotFound
		}
		if m.Status == "" {
			m.Status = cur.Status
		}
		if m.JoinedDate == "" {
			m.JoinedDate = cur.JoinedDate
		}
		if m.GroupIDs == nil {
			m.GroupIDs = cur.GroupIDs
		}
		*cur = m
		out = cur.Clone()
		return nil
	})
	if err != nil {
		return models.CellMember{}, err
	}
	return out, nil
}

// Delete removes a member record.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(st *memdb.State) error {
		for i := range st.Members {
			if st.Members[i].ID == id {
				st.Members = append(st.Members[:i], st.Members[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func today() string {
	return time.Now().Format("2006-01-02")
}
