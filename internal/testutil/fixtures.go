package testutil

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/church611/shepherdview/internal/app/store/memdb"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestPassword is the plaintext password every fixture leader gets.
const TestPassword = "secret611"

// testPasswordHash is computed once; bcrypt.MinCost keeps tests fast.
var testPasswordHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

// Fixtures provides helper methods for creating test data in a memdb store.
type Fixtures struct {
	db *memdb.DB
	t  *testing.T
}

var phoneSeq atomic.Int64

func nextPhone() string {
	return "9" + strconv.FormatInt(1000000+phoneSeq.Add(1), 10)
}

// NewFixtures creates a new Fixtures instance over the given store.
func NewFixtures(t *testing.T, db *memdb.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// SetupStore returns an empty in-memory store for a test.
func SetupStore(t *testing.T) *memdb.DB {
	t.Helper()
	return memdb.New()
}

// DB returns the underlying store for direct access in tests.
func (f *Fixtures) DB() *memdb.DB {
	return f.db
}

func (f *Fixtures) insertLeader(l models.Leader) models.Leader {
	f.t.Helper()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.PersonID == "" {
		l.PersonID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = models.StatusActive
	}
	if l.PasswordHash == "" {
		l.PasswordHash = testPasswordHash
	}
	if err := f.db.Update(func(s *memdb.State) error {
		s.Leaders = append(s.Leaders, l)
		return nil
	}); err != nil {
		f.t.Fatalf("insert leader: %v", err)
	}
	return l
}

// CreateAdmin creates a root admin leader with the test password.
func (f *Fixtures) CreateAdmin(chineseName, email string) models.Leader {
	f.t.Helper()
	return f.insertLeader(models.Leader{
		ChineseName: chineseName,
		FirstName:   "Admin",
		Email:       email,
		PhoneNumber: nextPhone(),
		MGCode:      "G",
		TribeCode:   "G",
		Generation:  1,
		IsAdmin:     true,
		Roles:       []string{models.RoleTribeLeader, models.RoleCellLeader},
	})
}

// CreateCellLeader creates a cell leader under the given parent.
func (f *Fixtures) CreateCellLeader(chineseName, email, mgCode string, generation int, parent *models.Leader) models.Leader {
	f.t.Helper()
	l := models.Leader{
		ChineseName: chineseName,
		FirstName:   chineseName,
		Email:       email,
		PhoneNumber: nextPhone(),
		MGCode:      mgCode,
		Generation:  generation,
		Roles:       []string{models.RoleCellLeader},
	}
	if len(mgCode) >= 2 {
		l.TribeCode = mgCode[:2]
	} else {
		l.TribeCode = mgCode
	}
	if parent != nil {
		l.ParentLeaderID = parent.ID
		l.ParentLeaderName = parent.DisplayName()
	}
	return f.insertLeader(l)
}

// CreateDisabledLeader creates a disabled cell leader.
func (f *Fixtures) CreateDisabledLeader(chineseName, email, mgCode string) models.Leader {
	f.t.Helper()
	l := models.Leader{
		ChineseName: chineseName,
		FirstName:   chineseName,
		Email:       email,
		PhoneNumber: nextPhone(),
		MGCode:      mgCode,
		Generation:  2,
		Status:      models.StatusDisabled,
		Roles:       []string{models.RoleCellLeader},
	}
	return f.insertLeader(l)
}

// CreateCoWorker creates a leader with only the co-worker role, which
// carries no group provisioning rights.
func (f *Fixtures) CreateCoWorker(chineseName, email string) models.Leader {
	f.t.Helper()
	return f.insertLeader(models.Leader{
		ChineseName: chineseName,
		FirstName:   chineseName,
		Email:       email,
		PhoneNumber: nextPhone(),
		Roles:       []string{models.RoleCoWorker},
	})
}

// CreateGroup attaches a group to the given leader and returns it.
func (f *Fixtures) CreateGroup(leaderID string, category models.GroupCategory, name string) models.CellGroup {
	f.t.Helper()
	g := models.CellGroup{
		ID:            uuid.NewString(),
		GroupName:     name,
		Category:      category,
		GroupDay:      "thursday",
		GroupTime:     "19:30",
		GroupLocation: "BIC",
		Frequency:     models.EveryWeek,
		PastorZoneID:  models.Zones[0].Code,
		Languages:     []string{"cantonese"},
	}
	if err := f.db.Update(func(s *memdb.State) error {
		l := s.LeaderByID(leaderID)
		if l == nil {
			f.t.Fatalf("CreateGroup: leader %s not found", leaderID)
		}
		g.TribeCode = l.TribeCode
		l.Groups = append(l.Groups, g)
		return nil
	}); err != nil {
		f.t.Fatalf("insert group: %v", err)
	}
	return g
}

// AddReport appends a weekly report to the given group.
func (f *Fixtures) AddReport(groupID, gatheringDate string, attendance int) models.Report {
	f.t.Helper()
	rep := models.Report{
		ID:              uuid.NewString(),
		GatheringDate:   gatheringDate,
		GatheringTime:   "19:30",
		AttendanceCount: attendance,
		Notes:           "-",
	}
	if err := f.db.Update(func(s *memdb.State) error {
		_, g := s.GroupByID(groupID)
		if g == nil {
			f.t.Fatalf("AddReport: group %s not found", groupID)
		}
		rep.Category = g.Category
		g.Reports = append([]models.Report{rep}, g.Reports...)
		return nil
	}); err != nil {
		f.t.Fatalf("insert report: %v", err)
	}
	return rep
}

// CreateMember creates a cell member, optionally enrolled in groups.
func (f *Fixtures) CreateMember(chineseName, phone string, groupIDs ...string) models.CellMember {
	f.t.Helper()
	m := models.CellMember{
		ID:          uuid.NewString(),
		ChineseName: chineseName,
		PhoneNumber: phone,
		Status:      "active",
		JoinedDate:  "2024-01-01",
		GroupIDs:    append([]string{}, groupIDs...),
	}
	if err := f.db.Update(func(s *memdb.State) error {
		s.Members = append(s.Members, m)
		return nil
	}); err != nil {
		f.t.Fatalf("insert member: %v", err)
	}
	return m
}
