// Package leaderstore owns leader records and their audit trails:
// creation, merge updates, hierarchy transfers, status changes,
// follow-up logs, and the CSV import merge.
package leaderstore

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/church611/shepherdview/internal/app/store/memdb"
	"github.com/church611/shepherdview/internal/app/system/normalize"
	"github.com/church611/shepherdview/internal/domain/models"
)

var (
	// ErrNotFound is returned when no leader has the requested id.
	ErrNotFound = errors.New("leader not found")
	// ErrMissingRequired is returned when email or first name is empty.
	ErrMissingRequired = errors.New("email and first name are required")
	// ErrReasonRequired is returned when a transfer or status change
	// arrives without a reason.
	ErrReasonRequired = errors.New("a reason is required")
	// ErrDuplicateLogin is returned when another leader already uses the email.
	ErrDuplicateLogin = errors.New("a leader with this email already exists")
	// ErrBadStatus is returned for a status outside active/disabled.
	ErrBadStatus = errors.New(`status must be "active" or "disabled"`)
)

// Actor identifies who performed a mutation, for audit records.
type Actor struct {
	ID   string
	Name string
}

type Store struct {
	db *memdb.DB
}

func New(db *memdb.DB) *Store {
	return &Store{db: db}
}

// List returns a deep copy of every leader in insertion order.
func (s *Store) List() []models.Leader {
	return s.db.Snapshot().Leaders
}

// GetByID loads one leader by id.
func (s *Store) GetByID(id string) (models.Leader, error) {
	var (
		out   models.Leader
		found bool
	)
	s.db.View(func(st *memdb.State) {
		if l := st.LeaderByID(id); l != nil {
			out = l.Clone()
			found = true
		}
	})
	if !found {
		return models.Leader{}, ErrNotFound
	}
	return out, nil
}

// GetByLogin loads one leader by email (case-insensitive) or exact
// phone number.
func (s *Store) GetByLogin(identity string) (models.Leader, error) {
	var (
		out   models.Leader
		found bool
	)
	s.db.View(func(st *memdb.State) {
		if l := st.LeaderByLogin(identity); l != nil {
			out = l.Clone()
			found = true
		}
	})
	if !found {
		return models.Leader{}, ErrNotFound
	}
	return out, nil
}

// Create inserts a new leader. Email and first name are required. When
// no password hash is supplied a default of the form 611XXX is
// generated; the plaintext is returned once so the admin can pass it
// on.
func (s *Store) Create(l models.Leader) (models.Leader, string, error) {
	l.Email = normalize.Email(l.Email)
	l.FirstName = normalize.Name(l.FirstName)
	l.ChineseName = normalize.Name(l.ChineseName)
	l.PhoneNumber = normalize.Phone(l.PhoneNumber)
	if l.Email == "" || l.FirstName == "" {
		return models.Leader{}, "", ErrMissingRequired
	}

	l.ID = uuid.NewString()
	l.PersonID = uuid.NewString()
	if l.Status == "" {
		l.Status = models.StatusActive
	}
	if !models.IsValidStatus(l.Status) {
		return models.Leader{}, "", ErrBadStatus
	}
	if l.Groups == nil {
		l.Groups = []models.CellGroup{}
	}

	generated := ""
	if l.PasswordHash == "" {
		generated = defaultPassword()
		hash, err := bcrypt.GenerateFromPassword([]byte(generated), bcrypt.DefaultCost)
		if err != nil {
			return models.Leader{}, "", fmt.Errorf("hash default password: %w", err)
		}
		l.PasswordHash = string(hash)
	}

	err := s.db.Update(func(st *memdb.State) error {
		if st.LeaderByLogin(l.Email) != nil {
			return ErrDuplicateLogin
		}
		applyLeadershipGate(&l)
		applyParent(st, &l)
		st.Leaders = append(st.Leaders, l)
		return nil
	})
	if err != nil {
		return models.Leader{}, "", err
	}
	return l, generated, nil
}

// Update merges an edited leader over the stored one. Identity, groups,
// audit lists, the password hash, and the parent link are preserved
// from the stored record; everything else comes from the input.
// Reparenting only happens through Transfer, which demands a reason and
// records the move. Dropping the cell-leader role clears the leadership
// fields.
func (s *Store) Update(l models.Leader) (models.Leader, error) {
	l.Email = normalize.Email(l.Email)
	l.FirstName = normalize.Name(l.FirstName)
	l.ChineseName = normalize.Name(l.ChineseName)
	l.PhoneNumber = normalize.Phone(l.PhoneNumber)
	if l.Email == "" || l.FirstName == "" {
		return models.Leader{}, ErrMissingRequired
	}
	if l.Status != "" && !models.IsValidStatus(l.Status) {
		return models.Leader{}, ErrBadStatus
	}

	var out models.Leader
	err := s.db.Update(func(st *memdb.State) error {
		cur := st.LeaderByID(l.ID)
		if cur == nil {
			return ErrNotFound
		}
		if other := st.LeaderByLogin(l.Email); other != nil && other.ID != l.ID {
			return ErrDuplicateLogin
		}
		l.PersonID = cur.PersonID
		l.PasswordHash = cur.PasswordHash
		l.Groups = cur.Groups
		l.FollowUpRecords = cur.FollowUpRecords
		l.TransferHistory = cur.TransferHistory
		l.StatusHistory = cur.StatusHistory
		l.ParentLeaderID = cur.ParentLeaderID
		l.ParentLeaderName = cur.ParentLeaderName
		if l.Status == "" {
			l.Status = cur.Status
		}
		applyLeadershipGate(&l)
		applyParent(st, &l)
		*cur = l
		out = cur.Clone()
		return nil
	})
	if err != nil {
		return models.Leader{}, err
	}
	return out, nil
}

// SetPassword replaces a leader's password hash.
func (s *Store) SetPassword(id, plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.db.Update(func(st *memdb.State) error {
		l := st.LeaderByID(id)
		if l == nil {
			return ErrNotFound
		}
		l.PasswordHash = string(hash)
		return nil
	})
}

// Transfer reparents a leader. Generation and tribe code are recomputed
// from the new parent; descendants keep their existing values. A
// TransferRecord is prepended to the moved leader's history.
func (s *Store) Transfer(leaderID, newParentID, reason string, by Actor) (models.Leader, error) {
	if normalize.Name(reason) == "" {
		return models.Leader{}, ErrReasonRequired
	}

	var out models.Leader
	err := s.db.Update(func(st *memdb.State) error {
		l := st.LeaderByID(leaderID)
		if l == nil {
			return ErrNotFound
		}

		rec := models.TransferRecord{
			ID:             uuid.NewString(),
			FromParentID:   l.ParentLeaderID,
			FromParentName: l.ParentLeaderName,
			ChangeDate:     today(),
			ChangedBy:      by.Name,
			ChangedByID:    by.ID,
			Reason:         reason,
		}

		if parent := st.LeaderByID(newParentID); parent != nil {
			rec.ToParentID = parent.ID
			rec.ToParentName = parent.DisplayName()
			l.ParentLeaderID = parent.ID
			l.ParentLeaderName = parent.DisplayName()
			l.Generation = parent.Generation + 1
			l.TribeCode = parentTribe(parent)
		} else {
			rec.ToParentName = "Root"
			l.ParentLeaderID = ""
			l.ParentLeaderName = ""
			l.Generation = 1
			l.TribeCode = l.MGCode
		}

		l.TransferHistory = append([]models.TransferRecord{rec}, l.TransferHistory...)
		out = l.Clone()
		return nil
	})
	if err != nil {
		return models.Leader{}, err
	}
	return out, nil
}

// ChangeStatus moves a leader between active and disabled, prepending a
// StatusChangeRecord. The reason is required.
func (s *Store) ChangeStatus(leaderID string, to models.AccountStatus, reason string, by Actor) (models.Leader, error) {
	if normalize.Name(reason) == "" {
		return models.Leader{}, ErrReasonRequired
	}
	if !models.IsValidStatus(to) {
		return models.Leader{}, ErrBadStatus
	}

	var out models.Leader
	err := s.db.Update(func(st *memdb.State) error {
		l := st.LeaderByID(leaderID)
		if l == nil {
			return ErrNotFound
		}
		rec := models.StatusChangeRecord{
			ID:          uuid.NewString(),
			OldStatus:   l.Status,
			NewStatus:   to,
			ChangeDate:  today(),
			ChangedBy:   by.Name,
			ChangedByID: by.ID,
			Reason:      reason,
		}
		l.Status = to
		l.StatusHistory = append([]models.StatusChangeRecord{rec}, l.StatusHistory...)
		out = l.Clone()
		return nil
	})
	if err != nil {
		return models.Leader{}, err
	}
	return out, nil
}

// AddFollowUp prepends a free-text follow-up record. Repeating the same
// content yields distinct records.
func (s *Store) AddFollowUp(leaderID, content string, by Actor) (models.Leader, error) {
	if normalize.Name(content) == "" {
		return models.Leader{}, errors.New("follow-up content is required")
	}

	var out models.Leader
	err := s.db.Update(func(st *memdb.State) error {
		l := st.LeaderByID(leaderID)
		if l == nil {
			return ErrNotFound
		}
		rec := models.FollowUpRecord{
			ID:        uuid.NewString(),
			AdminID:   by.ID,
			AdminName: by.Name,
			Date:      today(),
			Content:   content,
		}
		l.FollowUpRecords = append([]models.FollowUpRecord{rec}, l.FollowUpRecords...)
		out = l.Clone()
		return nil
	})
	if err != nil {
		return models.Leader{}, err
	}
	return out, nil
}

// Delete removes a leader record entirely. Normal operation disables
// instead; this is the explicit admin command.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(st *memdb.State) error {
		for i := range st.Leaders {
			if st.Leaders[i].ID == id {
				st.Leaders = append(st.Leaders[:i], st.Leaders[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// ImportRow is one parsed CSV row of the leader directory.
type ImportRow struct {
	MGCode           string
	MemberID         string
	ChineseName      string
	FirstName        string
	LastName         string
	Email            string
	PhoneNumber      string
	Roles            []string
	ParentLeaderName string
	OrdinationDate   string
	Generation       int
	Status           models.AccountStatus
	Identity         string
}

// ImportSummary reports the outcome of a bulk import.
type ImportSummary struct {
	New     int
	Updated int
	Errors  []string
}

// ImportMerge upserts parsed rows. An existing leader is matched by
// email first, then member id; matches keep their id, password hash,
// groups, and audit lists. Non-matching rows are inserted with fresh
// ids and a generated 611XXX default password. The whole merge is one
// atomic write.
func (s *Store) ImportMerge(rows []ImportRow) ImportSummary {
	var sum ImportSummary
	s.db.Update(func(st *memdb.State) error {
		for _, row := range rows {
			email := normalize.Email(row.Email)
			status := row.Status
			if status == "" {
				status = models.StatusActive
			}
			gen := row.Generation
			if gen == 0 {
				gen = 1
			}

			l := models.Leader{
				MGCode:           normalize.MGCode(row.MGCode),
				MemberID:         row.MemberID,
				ChineseName:      normalize.Name(row.ChineseName),
				FirstName:        normalize.Name(row.FirstName),
				LastName:         normalize.Name(row.LastName),
				Email:            email,
				PhoneNumber:      normalize.Phone(row.PhoneNumber),
				Roles:            row.Roles,
				ParentLeaderName: row.ParentLeaderName,
				OrdinationDate:   row.OrdinationDate,
				Generation:       gen,
				Status:           status,
				Identity:         row.Identity,
			}
			if l.MGCode != "" {
				l.TribeCode = l.MGCode[:min(2, len(l.MGCode))]
			}

			existing := findImportMatch(st, email, row.MemberID)
			if existing != nil {
				l.ID = existing.ID
				l.PersonID = existing.PersonID
				l.PasswordHash = existing.PasswordHash
				l.Groups = existing.Groups
				l.FollowUpRecords = existing.FollowUpRecords
				l.TransferHistory = existing.TransferHistory
				l.StatusHistory = existing.StatusHistory
				if l.TribeCode == "" {
					l.TribeCode = existing.TribeCode
				}
				*existing = l
				sum.Updated++
				continue
			}

			l.ID = uuid.NewString()
			l.PersonID = uuid.NewString()
			l.Groups = []models.CellGroup{}
			hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword()), bcrypt.DefaultCost)
			if err != nil {
				sum.Errors = append(sum.Errors, fmt.Sprintf("%s: %v", email, err))
				continue
			}
			l.PasswordHash = string(hash)
			st.Leaders = append(st.Leaders, l)
			sum.New++
		}
		return nil
	})
	return sum
}

func findImportMatch(st *memdb.State, email, memberID string) *models.Leader {
	for i := range st.Leaders {
		if normalize.Email(st.Leaders[i].Email) == email {
			return &st.Leaders[i]
		}
	}
	if memberID == "" {
		return nil
	}
	for i := range st.Leaders {
		if st.Leaders[i].MemberID == memberID {
			return &st.Leaders[i]
		}
	}
	return nil
}

// applyLeadershipGate clears MG code, generation, and ordination date
// when the leader does not carry the cell-leader role.
func applyLeadershipGate(l *models.Leader) {
	if l.HasRole(models.RoleCellLeader) {
		l.MGCode = normalize.MGCode(l.MGCode)
		return
	}
	l.MGCode = ""
	l.Generation = 0
	l.OrdinationDate = ""
}

// applyParent recomputes generation, tribe code, and the cached parent
// name from the parent link. Only leaders carrying leadership identity
// participate in the generation rule.
func applyParent(st *memdb.State, l *models.Leader) {
	if !l.HasRole(models.RoleCellLeader) {
		return
	}
	if l.ParentLeaderID == "" {
		if l.Generation == 0 {
			l.Generation = 1
		}
		if l.TribeCode == "" {
			l.TribeCode = l.MGCode
		}
		return
	}
	parent := st.LeaderByID(l.ParentLeaderID)
	if parent == nil {
		return
	}
	l.ParentLeaderName = parent.DisplayName()
	l.Generation = parent.Generation + 1
	l.TribeCode = parentTribe(parent)
}

func parentTribe(parent *models.Leader) string {
	if parent.TribeCode != "" {
		return parent.TribeCode
	}
	return parent.MGCode
}

func defaultPassword() string {
	return fmt.Sprintf("611%d", 100+rand.Intn(900))
}

func today() string {
	return time.Now().Format("2006-01-02")
}
