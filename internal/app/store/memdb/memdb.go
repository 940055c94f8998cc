// Package memdb is the single owner of application state. Leaders and
// members live in two slices guarded by one RWMutex; every command runs
// atomically under the write lock via Update, and every derivation
// works on a deep Snapshot so it can never observe a half-applied
// change.
package memdb

import (
	"strings"
	"sync"

	"github.com/church611/shepherdview/internal/domain/models"
)

// State is the mutable world as seen inside an Update or View callback.
// Callbacks must not retain pointers into it past their return.
type State struct {
	Leaders []models.Leader
	Members []models.CellMember
}

// DB owns the state. The zero value is empty and ready to use.
type DB struct {
	mu    sync.RWMutex
	state State
}

func New() *DB {
	return &DB{}
}

// Load replaces the entire state, typically with seed data at startup.
func (db *DB) Load(leaders []models.Leader, members []models.CellMember) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state = State{Leaders: leaders, Members: members}
}

// Update runs fn under the write lock. If fn returns an error the
// mutation is considered failed; fn is responsible for not leaving
// partial writes behind before erroring.
func (db *DB) Update(fn func(s *State) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn(&db.state)
}

// View runs fn under the read lock. fn must not mutate the state and
// must copy anything it wants to keep.
func (db *DB) View(fn func(s *State)) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn(&db.state)
}

// Snapshot returns a deep copy of the whole state. Derivations
// (dashboards, statistics, CSV exports) work on snapshots only.
func (db *DB) Snapshot() State {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := State{
		Leaders: make([]models.Leader, len(db.state.Leaders)),
		Members: make([]models.CellMember, len(db.state.Members)),
	}
	for i, l := range db.state.Leaders {
		out.Leaders[i] = l.Clone()
	}
	for i, m := range db.state.Members {
		out.Members[i] = m.Clone()
	}
	return out
}

// LeaderByID returns a pointer into the leaders slice, or nil. Valid
// only inside an Update or View callback.
func (s *State) LeaderByID(id string) *models.Leader {
	for i := range s.Leaders {
		if s.Leaders[i].ID == id {
			return &s.Leaders[i]
		}
	}
	return nil
}

// LeaderByLogin matches a leader by case-insensitive email or by exact
// phone number.
func (s *State) LeaderByLogin(identity string) *models.Leader {
	lower := strings.ToLower(strings.TrimSpace(identity))
	for i := range s.Leaders {
		if strings.ToLower(s.Leaders[i].Email) == lower || s.Leaders[i].PhoneNumber == identity {
			return &s.Leaders[i]
		}
	}
	return nil
}

// LeaderByMGCode returns the leader holding the given MG code, or nil.
func (s *State) LeaderByMGCode(code string) *models.Leader {
	if code == "" {
		return nil
	}
	for i := range s.Leaders {
		if s.Leaders[i].MGCode == code {
			return &s.Leaders[i]
		}
	}
	return nil
}

// GroupByID locates a group across all leaders. The returned leader is
// the group's owner.
func (s *State) GroupByID(groupID string) (*models.Leader, *models.CellGroup) {
	for i := range s.Leaders {
		for j := range s.Leaders[i].Groups {
			if s.Leaders[i].Groups[j].ID == groupID {
				return &s.Leaders[i], &s.Leaders[i].Groups[j]
			}
		}
	}
	return nil, nil
}

// MemberByID returns a pointer into the members slice, or nil.
func (s *State) MemberByID(id string) *models.CellMember {
	for i := range s.Members {
		if s.Members[i].ID == id {
			return &s.Members[i]
		}
	}
	return nil
}
