package tribes_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	"github.com/church611/shepherdview/internal/app/features/tribes"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*tribes.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupStore(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	return tribes.NewHandler(db, errLog, logger), testutil.NewFixtures(t, db)
}

func TestServeExport_WritesCSV(t *testing.T) {
	h, fixtures := newTestHandler(t)
	root := fixtures.CreateCellLeader("族長甲", "root@example.com", "G1", 1, nil)
	fixtures.CreateCellLeader("組長乙", "child@example.com", "G12", 2, &root)

	req := httptest.NewRequest("GET", "/tribes/export", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: root.ID, Name: root.DisplayName(), IsAdmin: true})
	rec := httptest.NewRecorder()

	h.ServeExport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type: got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Tribe_Statistics_") {
		t.Errorf("disposition: got %q", cd)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "MG Code") {
		t.Error("export should carry the header row")
	}
	if !strings.Contains(body, "G1") {
		t.Error("export should list the tribe root")
	}
}
