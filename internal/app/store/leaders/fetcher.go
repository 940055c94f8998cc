// internal/app/store/leaders/fetcher.go
package leaderstore

import (
	"github.com/church611/shepherdview/internal/app/store/memdb"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/domain/models"
)

// Fetcher reloads the session user from the store on every request so
// profile edits and suspensions take effect immediately.
type Fetcher struct {
	db *memdb.DB
}

func NewFetcher(db *memdb.DB) *Fetcher {
	return &Fetcher{db: db}
}

// FetchSessionUser returns the fresh session view of a leader. A
// missing or disabled leader reports not-found, which signs the
// session out.
func (f *Fetcher) FetchSessionUser(id string) (*auth.SessionUser, bool) {
	var (
		out   auth.SessionUser
		found bool
	)
	f.db.View(func(st *memdb.State) {
		l := st.LeaderByID(id)
		if l == nil || l.Status != models.StatusActive {
			return
		}
		out = auth.SessionUser{
			ID:      l.ID,
			Name:    l.DisplayName(),
			Email:   l.Email,
			IsAdmin: l.IsAdmin,
		}
		found = true
	})
	if !found {
		return nil, false
	}
	return &out, true
}
