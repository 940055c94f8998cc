package leaders_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	"github.com/church611/shepherdview/internal/app/features/leaders"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auditlog"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/church611/shepherdview/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*leaders.Handler, *testutil.Fixtures, *leaderstore.Store) {
	t.Helper()
	db := testutil.SetupStore(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	audit := auditlog.New(logger, auditlog.Config{Auth: "log", Admin: "log"})

	h := leaders.NewHandler(db, errLog, audit, "852", "https://shepherd.example.com", logger)
	return h, testutil.NewFixtures(t, db), leaderstore.New(db)
}

func adminSession(f *testutil.Fixtures) *auth.SessionUser {
	admin := f.CreateAdmin("管理員", "admin@example.com")
	return &auth.SessionUser{ID: admin.ID, Name: admin.DisplayName(), Email: admin.Email, IsAdmin: true}
}

// post drives a mutation handler through a recover wrapper; failure
// paths re-render templates, which panics without an initialized engine.
func post(t *testing.T, target, leaderID string, form url.Values, user *auth.SessionUser, serve func(http.ResponseWriter, *http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if leaderID != "" {
		req = testutil.WithChiURLParam(req, "id", leaderID)
	}
	if user != nil {
		req = auth.WithTestUser(req, user)
	}
	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		serve(rec, req)
	}()
	return rec
}

func TestHandleCreate_GeneratesDefaultPassword(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)

	post(t, "/leaders", "", url.Values{
		"chinese_name": {"陳大文"},
		"first_name":   {"David"},
		"email":        {"david@example.com"},
		"roles":        {models.RoleCellLeader},
		"mg_code":      {"G12"},
		"generation":   {"3"},
	}, admin, h.HandleCreate)

	created, err := store.GetByLogin("david@example.com")
	if err != nil {
		t.Fatalf("created leader not found: %v", err)
	}
	if created.MGCode != "G12" {
		t.Errorf("MGCode: got %q, want %q", created.MGCode, "G12")
	}
	if created.PasswordHash == "" {
		t.Error("created leader should carry a generated password hash")
	}
	if created.Status != models.StatusActive {
		t.Errorf("status: got %q, want active", created.Status)
	}
}

func TestHandleCreate_DuplicateEmail(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)
	fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)

	post(t, "/leaders", "", url.Values{
		"first_name": {"Other"},
		"email":      {"david@example.com"},
	}, admin, h.HandleCreate)

	count := 0
	for _, l := range store.List() {
		if l.Email == "david@example.com" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one leader with the email, got %d", count)
	}
}

func TestHandleCreate_CellLeaderNeedsMGCode(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)

	post(t, "/leaders", "", url.Values{
		"first_name": {"David"},
		"email":      {"david@example.com"},
		"roles":      {models.RoleCellLeader},
		"mg_code":    {""},
	}, admin, h.HandleCreate)

	if _, err := store.GetByLogin("david@example.com"); err == nil {
		t.Error("cell leader without MG code should not be created")
	}
}

func TestHandleEdit_KeepsStatusAndGroups(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)

	leader := fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)
	fixtures.CreateGroup(leader.ID, models.CategoryOpenCell, "G12 - 開放小組")

	rec := post(t, "/leaders/"+leader.ID+"/edit", leader.ID, url.Values{
		"chinese_name": {"陳大文"},
		"first_name":   {"David"},
		"email":        {"david@example.com"},
		"phone_number": {"98765432"},
		"roles":        {models.RoleCellLeader},
		"mg_code":      {"G12"},
		"generation":   {"3"},
		"status":       {"disabled"},
		"avatar_url":   {"https://photos.example.com/david.jpg"},
	}, admin, h.HandleEdit)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	got, _ := store.GetByID(leader.ID)
	if got.PhoneNumber != "98765432" {
		t.Errorf("phone: got %q, want updated", got.PhoneNumber)
	}
	if got.AvatarURL != "https://photos.example.com/david.jpg" {
		t.Errorf("avatar url: got %q, want saved", got.AvatarURL)
	}
	// Status never changes through edit; it has its own reason-required flow.
	if got.Status != models.StatusActive {
		t.Errorf("status: got %q, want active", got.Status)
	}
	if len(got.Groups) != 1 {
		t.Errorf("groups: got %d, want 1 preserved", len(got.Groups))
	}
}

func TestHandleEdit_CannotReparent(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)

	parent := fixtures.CreateCellLeader("王O勝", "jason@example.com", "GJ", 1, nil)
	other := fixtures.CreateCellLeader("李O恩", "mary@example.com", "MY", 1, nil)
	child := fixtures.CreateCellLeader("陳O信", "faith@example.com", "GJ1", 2, &parent)

	// A forged parent_leader_id in the edit post must not move the
	// leader; hierarchy moves only through the transfer flow.
	rec := post(t, "/leaders/"+child.ID+"/edit", child.ID, url.Values{
		"first_name":       {"Faith"},
		"email":            {"faith@example.com"},
		"roles":            {models.RoleCellLeader},
		"mg_code":          {"GJ1"},
		"generation":       {"2"},
		"parent_leader_id": {other.ID},
	}, admin, h.HandleEdit)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	got, _ := store.GetByID(child.ID)
	if got.ParentLeaderID != parent.ID {
		t.Errorf("parent: got %q, want %q", got.ParentLeaderID, parent.ID)
	}
	if got.Generation != 2 {
		t.Errorf("generation: got %d, want 2", got.Generation)
	}
	if len(got.TransferHistory) != 0 {
		t.Errorf("transfer history: got %d records, want 0", len(got.TransferHistory))
	}
}

func TestHandleEdit_DroppingCellRoleClearsLeadership(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)

	leader := fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)

	post(t, "/leaders/"+leader.ID+"/edit", leader.ID, url.Values{
		"first_name": {"David"},
		"email":      {"david@example.com"},
		"roles":      {models.RoleCoWorker},
		"mg_code":    {"G12"},
		"generation": {"3"},
	}, admin, h.HandleEdit)

	got, _ := store.GetByID(leader.ID)
	if got.MGCode != "" || got.Generation != 0 {
		t.Errorf("leadership fields should be cleared, got MGCode=%q Generation=%d", got.MGCode, got.Generation)
	}
}

func TestHandleTransfer_RequiresReason(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)

	parent := fixtures.CreateCellLeader("族長", "parent@example.com", "G1", 2, nil)
	child := fixtures.CreateCellLeader("組長", "child@example.com", "G12", 3, &parent)
	newParent := fixtures.CreateCellLeader("新族長", "newparent@example.com", "G2", 2, nil)

	post(t, "/leaders/"+child.ID+"/transfer", child.ID, url.Values{
		"new_parent_id": {newParent.ID},
		"reason":        {""},
	}, admin, h.HandleTransfer)

	got, _ := store.GetByID(child.ID)
	if got.ParentLeaderID != parent.ID {
		t.Error("transfer without reason should not change the parent")
	}
}

func TestHandleTransfer_Success(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)

	parent := fixtures.CreateCellLeader("族長", "parent@example.com", "G1", 2, nil)
	child := fixtures.CreateCellLeader("組長", "child@example.com", "G12", 3, &parent)
	newParent := fixtures.CreateCellLeader("新族長", "newparent@example.com", "G2", 2, nil)

	rec := post(t, "/leaders/"+child.ID+"/transfer", child.ID, url.Values{
		"new_parent_id": {newParent.ID},
		"reason":        {"Family moved to the adults zone"},
	}, admin, h.HandleTransfer)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	got, _ := store.GetByID(child.ID)
	if got.ParentLeaderID != newParent.ID {
		t.Errorf("parent: got %q, want new parent", got.ParentLeaderID)
	}
	if got.ParentLeaderName != newParent.DisplayName() {
		t.Errorf("parent name: got %q, want refreshed", got.ParentLeaderName)
	}
	if len(got.TransferHistory) != 1 {
		t.Fatalf("transfer history: got %d entries, want 1", len(got.TransferHistory))
	}
	if got.TransferHistory[0].Reason != "Family moved to the adults zone" {
		t.Errorf("reason not recorded: %q", got.TransferHistory[0].Reason)
	}
}

func TestHandleChangeStatus_DisableAndReinstate(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)

	leader := fixtures.CreateCellLeader("組長", "leader@example.com", "G12", 3, nil)

	post(t, "/leaders/"+leader.ID+"/status", leader.ID, url.Values{
		"status": {"disabled"},
		"reason": {"Sabbatical"},
	}, admin, h.HandleChangeStatus)

	got, _ := store.GetByID(leader.ID)
	if got.Status != models.StatusDisabled {
		t.Fatalf("status: got %q, want disabled", got.Status)
	}
	if len(got.StatusHistory) != 1 || got.StatusHistory[0].Reason != "Sabbatical" {
		t.Error("status change should prepend a reasoned history entry")
	}

	post(t, "/leaders/"+leader.ID+"/status", leader.ID, url.Values{
		"status": {"active"},
		"reason": {"Back from sabbatical"},
	}, admin, h.HandleChangeStatus)

	got, _ = store.GetByID(leader.ID)
	if got.Status != models.StatusActive {
		t.Fatalf("status: got %q, want active", got.Status)
	}
	// Newest first.
	if len(got.StatusHistory) != 2 || got.StatusHistory[0].NewStatus != models.StatusActive {
		t.Error("status history should be newest-first")
	}
}

func TestHandleAddFollowUp(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)

	leader := fixtures.CreateCellLeader("組長", "leader@example.com", "G12", 3, nil)

	post(t, "/leaders/"+leader.ID+"/followup", leader.ID, url.Values{
		"content": {"Called about the missing report <script>alert(1)</script>"},
	}, admin, h.HandleAddFollowUp)

	got, _ := store.GetByID(leader.ID)
	if len(got.FollowUpRecords) != 1 {
		t.Fatalf("follow-ups: got %d, want 1", len(got.FollowUpRecords))
	}
	rec := got.FollowUpRecords[0]
	if strings.Contains(rec.Content, "<script>") {
		t.Error("follow-up content should be sanitized")
	}
	if rec.AdminName != "管理員" {
		t.Errorf("admin name: got %q, want actor name", rec.AdminName)
	}
}

func TestHandleDelete(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)

	leader := fixtures.CreateCellLeader("組長", "leader@example.com", "G12", 3, nil)

	rec := post(t, "/leaders/"+leader.ID+"/delete", leader.ID, nil, admin, h.HandleDelete)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if _, err := store.GetByID(leader.ID); err == nil {
		t.Error("leader should be gone after delete")
	}
}

func TestServeExport_WritesCSV(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)
	admin := adminSession(fixtures)
	fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)

	req := httptest.NewRequest("GET", "/leaders/export", nil)
	req = auth.WithTestUser(req, admin)
	rec := httptest.NewRecorder()
	h.ServeExport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type: got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Leader_Directory_Export_") {
		t.Errorf("content disposition: got %q", cd)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"G12"`) || !strings.Contains(body, `"david@example.com"`) {
		t.Error("export body should contain the leader row, double-quoted")
	}
}

func TestServeImportTemplate(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)
	admin := adminSession(fixtures)

	req := httptest.NewRequest("GET", "/leaders/import/template", nil)
	req = auth.WithTestUser(req, admin)
	rec := httptest.NewRecorder()
	h.ServeImportTemplate(rec, req)

	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Cell_Leader_Import_Template.csv") {
		t.Errorf("content disposition: got %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "mgCode") {
		t.Error("template should carry the canonical header row")
	}
}

func TestHandleImport_MergesRows(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	admin := adminSession(fixtures)
	existing := fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)

	csv := "mgCode,memberId,chineseName,firstName,lastName,email,phoneNumber,roles,parentLeaderName,ordinationDate,generation,status,identity\r\n" +
		`"G12","","陳大文","David","Chan","david@example.com","91234567","小組長","","2023-01-01","3","active",""` + "\r\n" +
		`"G13","M2002","李小明","Ming","Li","ming@example.com","92345678","小組長","","2024-02-02","3","active",""` + "\r\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("csv_file", "leaders.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(csv)); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/leaders/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = auth.WithTestUser(req, admin)
	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		h.HandleImport(rec, req)
	}()

	// Existing leader updated in place, new one inserted.
	updated, err := store.GetByID(existing.ID)
	if err != nil {
		t.Fatalf("existing leader lost in merge: %v", err)
	}
	if updated.PhoneNumber != "91234567" {
		t.Errorf("existing leader phone: got %q, want merged value", updated.PhoneNumber)
	}
	added, err := store.GetByLogin("ming@example.com")
	if err != nil {
		t.Fatalf("new leader not inserted: %v", err)
	}
	if added.PasswordHash == "" {
		t.Error("imported leader should get a generated password")
	}
}
