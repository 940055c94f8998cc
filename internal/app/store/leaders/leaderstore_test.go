package leaderstore_test

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/church611/shepherdview/internal/testutil"
)

var admin = leaderstore.Actor{ID: "admin-1", Name: "管理員"}

func TestCreate_GeneratesDefaultPassword(t *testing.T) {
	db := testutil.SetupStore(t)
	store := leaderstore.New(db)

	l, plaintext, err := store.Create(models.Leader{
		FirstName:   "Jason",
		ChineseName: "王O勝",
		Email:       "jason@church611.org",
		MGCode:      "GJ",
		Roles:       []string{models.RoleCellLeader},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !strings.HasPrefix(plaintext, "611") || len(plaintext) != 6 {
		t.Errorf("default password shape: got %q", plaintext)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(plaintext)); err != nil {
		t.Errorf("stored hash does not match generated password: %v", err)
	}
	if l.Status != models.StatusActive {
		t.Errorf("status default: got %q", l.Status)
	}
	if l.Generation != 1 || l.TribeCode != "GJ" {
		t.Errorf("root leader defaults: gen=%d tribe=%q", l.Generation, l.TribeCode)
	}
}

func TestCreate_RequiresEmailAndFirstName(t *testing.T) {
	db := testutil.SetupStore(t)
	store := leaderstore.New(db)

	_, _, err := store.Create(models.Leader{ChineseName: "王O勝"})
	if !errors.Is(err, leaderstore.ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)

	_, _, err := store.Create(models.Leader{
		FirstName: "Other",
		Email:     "JASON@church611.org", // case-insensitive match
	})
	if !errors.Is(err, leaderstore.ErrDuplicateLogin) {
		t.Fatalf("expected ErrDuplicateLogin, got %v", err)
	}
}

func TestCreate_ChildInheritsFromParent(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	parent := fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)

	child, _, err := store.Create(models.Leader{
		FirstName:      "Anne",
		Email:          "anne@church611.org",
		MGCode:         "GJ1",
		Roles:          []string{models.RoleCellLeader},
		ParentLeaderID: parent.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if child.Generation != parent.Generation+1 {
		t.Errorf("generation: got %d, want %d", child.Generation, parent.Generation+1)
	}
	if child.TribeCode != parent.TribeCode {
		t.Errorf("tribe code: got %q, want %q", child.TribeCode, parent.TribeCode)
	}
	if child.ParentLeaderName != parent.DisplayName() {
		t.Errorf("cached parent name: got %q", child.ParentLeaderName)
	}
}

func TestCreate_LeadershipGateClearsFields(t *testing.T) {
	db := testutil.SetupStore(t)
	store := leaderstore.New(db)

	l, _, err := store.Create(models.Leader{
		FirstName:      "Grace",
		Email:          "grace@church611.org",
		MGCode:         "GX",
		Generation:     3,
		OrdinationDate: "2020-01-01",
		Roles:          []string{models.RoleCoWorker}, // no cell-leader role
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if l.MGCode != "" || l.Generation != 0 || l.OrdinationDate != "" {
		t.Errorf("leadership fields should be cleared: mg=%q gen=%d ord=%q",
			l.MGCode, l.Generation, l.OrdinationDate)
	}
}

func TestUpdate_PreservesIdentityAndHistory(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	l := fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)
	fixtures.CreateGroup(l.ID, models.CategoryOpenCell, "GJ - Open Cell")
	if _, err := store.AddFollowUp(l.ID, "Called on Tuesday", admin); err != nil {
		t.Fatalf("AddFollowUp failed: %v", err)
	}

	edited := l
	edited.FirstName = "Jason"
	edited.ChineseName = "王大勝"
	edited.Groups = nil
	edited.FollowUpRecords = nil

	got, err := store.Update(edited)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if got.ChineseName != "王大勝" {
		t.Errorf("edit not applied: %q", got.ChineseName)
	}
	if len(got.Groups) != 1 {
		t.Errorf("groups should be preserved, got %d", len(got.Groups))
	}
	if len(got.FollowUpRecords) != 1 {
		t.Errorf("follow-up records should be preserved, got %d", len(got.FollowUpRecords))
	}
}

func TestUpdate_IgnoresParentChange(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	a := fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)
	b := fixtures.CreateCellLeader("李O恩", "mary@church611.org", "MY", 1, nil)
	c := fixtures.CreateCellLeader("陳O信", "faith@church611.org", "GJ1", 2, &a)

	// A plain edit must not move c under b; only Transfer, which
	// demands a reason and writes a TransferRecord, may reparent.
	edited := c
	edited.ParentLeaderID = b.ID
	edited.ChineseName = "陳大信"

	got, err := store.Update(edited)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if got.ParentLeaderID != a.ID {
		t.Errorf("parent changed via Update: got %q, want %q", got.ParentLeaderID, a.ID)
	}
	if got.Generation != 2 {
		t.Errorf("generation changed via Update: got %d", got.Generation)
	}
	if len(got.TransferHistory) != 0 {
		t.Errorf("Update must not write transfer records, got %d", len(got.TransferHistory))
	}
	if got.ChineseName != "陳大信" {
		t.Errorf("edit not applied: %q", got.ChineseName)
	}
}

func TestUpdate_DuplicateEmailOfOtherLeader(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)
	other := fixtures.CreateCellLeader("陳O恩", "anne@church611.org", "GJ1", 2, nil)

	other.Email = "jason@church611.org"
	if _, err := store.Update(other); !errors.Is(err, leaderstore.ErrDuplicateLogin) {
		t.Fatalf("expected ErrDuplicateLogin, got %v", err)
	}
}

func TestTransfer_ReparentsAndRecords(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	oldParent := fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)
	newParent := fixtures.CreateCellLeader("李O明", "ming@church611.org", "MY", 1, nil)
	child := fixtures.CreateCellLeader("陳O恩", "anne@church611.org", "GJ1", 2, &oldParent)

	got, err := store.Transfer(child.ID, newParent.ID, "moved districts", admin)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	if got.ParentLeaderID != newParent.ID {
		t.Errorf("parent: got %q", got.ParentLeaderID)
	}
	if got.Generation != newParent.Generation+1 {
		t.Errorf("generation: got %d", got.Generation)
	}
	if got.TribeCode != newParent.TribeCode {
		t.Errorf("tribe code: got %q, want %q", got.TribeCode, newParent.TribeCode)
	}
	if len(got.TransferHistory) != 1 {
		t.Fatalf("expected 1 transfer record, got %d", len(got.TransferHistory))
	}
	rec := got.TransferHistory[0]
	if rec.FromParentID != oldParent.ID || rec.ToParentID != newParent.ID {
		t.Errorf("record endpoints: from=%q to=%q", rec.FromParentID, rec.ToParentID)
	}
	if rec.Reason != "moved districts" || rec.ChangedBy != admin.Name {
		t.Errorf("record detail: %+v", rec)
	}
}

func TestTransfer_ToRoot(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	parent := fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)
	child := fixtures.CreateCellLeader("陳O恩", "anne@church611.org", "GJ1", 2, &parent)

	got, err := store.Transfer(child.ID, "", "promoted to tribe root", admin)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	if got.ParentLeaderID != "" || got.Generation != 1 {
		t.Errorf("root promotion: parent=%q gen=%d", got.ParentLeaderID, got.Generation)
	}
	if got.TribeCode != got.MGCode {
		t.Errorf("a new root's tribe is its own MG code, got %q", got.TribeCode)
	}
}

func TestTransfer_RequiresReason(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	l := fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)

	if _, err := store.Transfer(l.ID, "", "  ", admin); !errors.Is(err, leaderstore.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
}

func TestChangeStatus_RecordsHistory(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	l := fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)

	got, err := store.ChangeStatus(l.ID, models.StatusDisabled, "sabbatical", admin)
	if err != nil {
		t.Fatalf("ChangeStatus failed: %v", err)
	}

	if got.Status != models.StatusDisabled {
		t.Errorf("status: got %q", got.Status)
	}
	if len(got.StatusHistory) != 1 {
		t.Fatalf("expected 1 status record, got %d", len(got.StatusHistory))
	}
	rec := got.StatusHistory[0]
	if rec.OldStatus != models.StatusActive || rec.NewStatus != models.StatusDisabled {
		t.Errorf("record statuses: %+v", rec)
	}
}

func TestAddFollowUp_PrependsDistinctRecords(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	l := fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)

	if _, err := store.AddFollowUp(l.ID, "No answer", admin); err != nil {
		t.Fatalf("AddFollowUp failed: %v", err)
	}
	got, err := store.AddFollowUp(l.ID, "No answer", admin)
	if err != nil {
		t.Fatalf("AddFollowUp failed: %v", err)
	}

	if len(got.FollowUpRecords) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got.FollowUpRecords))
	}
	if got.FollowUpRecords[0].ID == got.FollowUpRecords[1].ID {
		t.Error("repeated content must still produce distinct records")
	}
}

func TestImportMerge_MatchesByEmailThenMemberID(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	existing := fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)
	fixtures.CreateGroup(existing.ID, models.CategoryOpenCell, "GJ - Open Cell")

	sum := store.ImportMerge([]leaderstore.ImportRow{
		{
			MGCode:      "GJ",
			ChineseName: "王大勝",
			FirstName:   "Jason",
			Email:       "jason@church611.org",
			Roles:       []string{models.RoleCellLeader},
			Generation:  1,
		},
		{
			MGCode:      "MY",
			ChineseName: "李O明",
			FirstName:   "Ming",
			Email:       "ming@church611.org",
			Roles:       []string{models.RoleCellLeader},
			Generation:  1,
		},
	})

	if sum.Updated != 1 || sum.New != 1 {
		t.Fatalf("summary: %+v", sum)
	}

	merged, err := store.GetByID(existing.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if merged.ChineseName != "王大勝" {
		t.Errorf("merge did not apply row values: %q", merged.ChineseName)
	}
	if len(merged.Groups) != 1 {
		t.Errorf("merge must keep existing groups, got %d", len(merged.Groups))
	}
	if merged.PasswordHash != existing.PasswordHash {
		t.Error("merge must keep the existing password hash")
	}

	if _, err := store.GetByLogin("ming@church611.org"); err != nil {
		t.Errorf("new row not inserted: %v", err)
	}
}

func TestDelete_RemovesRecord(t *testing.T) {
	db := testutil.SetupStore(t)
	fixtures := testutil.NewFixtures(t, db)
	store := leaderstore.New(db)

	l := fixtures.CreateCellLeader("王O勝", "jason@church611.org", "GJ", 1, nil)

	if err := store.Delete(l.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(l.ID); !errors.Is(err, leaderstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
