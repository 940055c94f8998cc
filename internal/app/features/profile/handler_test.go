package profile_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	"github.com/church611/shepherdview/internal/app/features/profile"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/system/auditlog"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/church611/shepherdview/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) (*profile.Handler, *testutil.Fixtures, *leaderstore.Store) {
	t.Helper()
	db := testutil.SetupStore(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	audit := auditlog.New(logger, auditlog.Config{Auth: "log", Admin: "log"})

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	h := profile.NewHandler(db, sessionMgr, errLog, audit, logger)
	return h, testutil.NewFixtures(t, db), leaderstore.New(db)
}

func sessionFor(l models.Leader) *auth.SessionUser {
	return &auth.SessionUser{ID: l.ID, Name: l.DisplayName(), Email: l.Email, IsAdmin: l.IsAdmin}
}

// postForm drives a handler through a recover wrapper; error paths
// re-render the profile template, which panics without an initialized
// template engine.
func postForm(t *testing.T, target string, form url.Values, user *auth.SessionUser, serve func(http.ResponseWriter, *http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
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

func TestHandleUpdateInfo_Success(t *testing.T) {
	h, fixtures, store := newTestHandler(t)

	leader := fixtures.CreateCellLeader("陳大文", "chan@example.com", "G12", 3, nil)

	rec := postForm(t, "/profile/info", url.Values{
		"chinese_name": {"陳大文"},
		"first_name":   {"David"},
		"last_name":    {"Chan"},
		"email":        {"david.chan@example.com"},
		"phone_number": {"91234567"},
	}, sessionFor(leader), h.HandleUpdateInfo)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/profile?success=info" {
		t.Errorf("Location: got %q, want %q", location, "/profile?success=info")
	}

	got, err := store.GetByID(leader.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "david.chan@example.com" {
		t.Errorf("email: got %q, want updated", got.Email)
	}
	if got.FirstName != "David" {
		t.Errorf("first name: got %q, want %q", got.FirstName, "David")
	}
	// MG lineage fields are not editable from the profile page.
	if got.MGCode != "G12" || got.Generation != 3 {
		t.Errorf("lineage changed: MGCode=%q Generation=%d", got.MGCode, got.Generation)
	}
}

func TestHandleUpdateInfo_MissingEmail(t *testing.T) {
	h, fixtures, store := newTestHandler(t)

	leader := fixtures.CreateCellLeader("陳大文", "chan@example.com", "G12", 3, nil)

	rec := postForm(t, "/profile/info", url.Values{
		"first_name": {"David"},
		"email":      {""},
	}, sessionFor(leader), h.HandleUpdateInfo)

	if rec.Code == http.StatusSeeOther {
		t.Error("missing email should not redirect to success")
	}
	got, _ := store.GetByID(leader.ID)
	if got.Email != "chan@example.com" {
		t.Errorf("email should be unchanged, got %q", got.Email)
	}
}

func TestHandleUpdateInfo_DuplicateEmail(t *testing.T) {
	h, fixtures, store := newTestHandler(t)

	fixtures.CreateAdmin("管理員", "admin@example.com")
	leader := fixtures.CreateCellLeader("陳大文", "chan@example.com", "G12", 3, nil)

	rec := postForm(t, "/profile/info", url.Values{
		"first_name": {"David"},
		"email":      {"admin@example.com"},
	}, sessionFor(leader), h.HandleUpdateInfo)

	if rec.Code == http.StatusSeeOther {
		t.Error("duplicate email should not redirect to success")
	}
	got, _ := store.GetByID(leader.ID)
	if got.Email != "chan@example.com" {
		t.Errorf("email should be unchanged, got %q", got.Email)
	}
}

func TestHandleChangePassword_Success(t *testing.T) {
	h, fixtures, store := newTestHandler(t)

	leader := fixtures.CreateCellLeader("陳大文", "chan@example.com", "G12", 3, nil)

	rec := postForm(t, "/profile/password", url.Values{
		"current_password": {testutil.TestPassword},
		"new_password":     {"fresh-pass-1"},
		"confirm_password": {"fresh-pass-1"},
	}, sessionFor(leader), h.HandleChangePassword)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/profile?success=password" {
		t.Errorf("Location: got %q, want %q", location, "/profile?success=password")
	}

	got, _ := store.GetByID(leader.ID)
	if bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("fresh-pass-1")) != nil {
		t.Error("password should have been changed")
	}
}

func TestHandleChangePassword_WrongCurrent(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	leader := fixtures.CreateCellLeader("陳大文", "chan@example.com", "G12", 3, nil)

	rec := postForm(t, "/profile/password", url.Values{
		"current_password": {"not-my-password"},
		"new_password":     {"fresh-pass-1"},
		"confirm_password": {"fresh-pass-1"},
	}, sessionFor(leader), h.HandleChangePassword)

	if rec.Code == http.StatusSeeOther {
		t.Error("wrong current password should not redirect to success")
	}
}

func TestHandleChangePassword_Mismatch(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	leader := fixtures.CreateCellLeader("陳大文", "chan@example.com", "G12", 3, nil)

	rec := postForm(t, "/profile/password", url.Values{
		"current_password": {testutil.TestPassword},
		"new_password":     {"fresh-pass-1"},
		"confirm_password": {"fresh-pass-2"},
	}, sessionFor(leader), h.HandleChangePassword)

	if rec.Code == http.StatusSeeOther {
		t.Error("mismatched passwords should not redirect to success")
	}
}

func TestHandleChangePassword_TooShort(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	leader := fixtures.CreateCellLeader("陳大文", "chan@example.com", "G12", 3, nil)

	rec := postForm(t, "/profile/password", url.Values{
		"current_password": {testutil.TestPassword},
		"new_password":     {"short"},
		"confirm_password": {"short"},
	}, sessionFor(leader), h.HandleChangePassword)

	if rec.Code == http.StatusSeeOther {
		t.Error("short password should not redirect to success")
	}
}

func TestServeProfile_Unauthenticated(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postForm(t, "/profile", nil, nil, h.ServeProfile)

	if rec.Code == http.StatusOK && rec.Body.Len() > 0 {
		t.Error("unauthenticated profile request should not render the page")
	}
}
