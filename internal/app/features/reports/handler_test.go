package reports_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	"github.com/church611/shepherdview/internal/app/features/reports"
	memberstore "github.com/church611/shepherdview/internal/app/store/members"
	reportstore "github.com/church611/shepherdview/internal/app/store/reports"
	"github.com/church611/shepherdview/internal/app/system/auditlog"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/church611/shepherdview/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*reports.Handler, *testutil.Fixtures, *reportstore.Store) {
	t.Helper()
	db := testutil.SetupStore(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	audit := auditlog.New(logger, auditlog.Config{Auth: "log", Admin: "log"})

	h := reports.NewHandler(db, errLog, audit, logger)
	return h, testutil.NewFixtures(t, db), reportstore.New(db)
}

func sessionFor(l models.Leader) *auth.SessionUser {
	return &auth.SessionUser{ID: l.ID, Name: l.DisplayName(), Email: l.Email, IsAdmin: l.IsAdmin}
}

// post drives a mutation handler through a recover wrapper; failure
// paths re-render templates, which panics without an initialized engine.
func post(t *testing.T, target string, params map[string]string, form url.Values, user *auth.SessionUser, serve func(http.ResponseWriter, *http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range params {
		req = testutil.WithChiURLParam(req, k, v)
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

func TestHandleSubmitReport_Scalar(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	leader := fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)
	g := fixtures.CreateGroup(leader.ID, models.CategoryOpenCell, "")

	rec := post(t, "/groups/"+g.ID+"/reports", map[string]string{"id": g.ID}, url.Values{
		"gathering_date":    {"2026-08-27"},
		"gathering_time":    {"19:30"},
		"attendance_count":  {"9"},
		"new_visitor_count": {"2"},
	}, sessionFor(leader), h.HandleSubmitReport)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}

	list, err := store.ListForGroup(g.ID)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one report, got %d", len(list))
	}
	r := list[0]
	if r.AttendanceCount != 9 || r.NewVisitorCount != 2 {
		t.Errorf("counts: got %d/%d", r.AttendanceCount, r.NewVisitorCount)
	}
	if r.Category != models.CategoryOpenCell {
		t.Errorf("category snapshot: got %q", r.Category)
	}
	if r.Notes != "-" {
		t.Errorf("empty notes should default to %q, got %q", "-", r.Notes)
	}
}

func TestHandleSubmitReport_DetailedDerivesCount(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	leader := fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)
	g := fixtures.CreateGroup(leader.ID, models.CategoryOpenCell, "")
	m1 := fixtures.CreateMember("張三", "91234001", g.ID)
	m2 := fixtures.CreateMember("李四", "91234002", g.ID)

	post(t, "/groups/"+g.ID+"/reports", map[string]string{"id": g.ID}, url.Values{
		"gathering_date":   {"2026-08-27"},
		"detailed":         {"1"},
		"attended":         {m1.ID, m2.ID},
		"guest_name":       {"王五", ""},
		"guest_phone":      {"91234003", ""},
		"attendance_count": {"99"},
	}, sessionFor(leader), h.HandleSubmitReport)

	list, _ := store.ListForGroup(g.ID)
	if len(list) != 1 {
		t.Fatalf("expected one report, got %d", len(list))
	}
	r := list[0]
	// 2 members + 1 guest + the leader.
	if r.AttendanceCount != 4 {
		t.Errorf("derived attendance: got %d, want 4", r.AttendanceCount)
	}
	if len(r.Guests) != 1 || r.Guests[0].Name != "王五" {
		t.Errorf("guests: got %+v", r.Guests)
	}
}

func TestHandleSubmitReport_DateRequired(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	leader := fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)
	g := fixtures.CreateGroup(leader.ID, models.CategoryOpenCell, "")

	post(t, "/groups/"+g.ID+"/reports", map[string]string{"id": g.ID}, url.Values{
		"attendance_count": {"5"},
	}, sessionFor(leader), h.HandleSubmitReport)

	list, _ := store.ListForGroup(g.ID)
	if len(list) != 0 {
		t.Errorf("dateless report should be rejected, got %d reports", len(list))
	}
}

func TestHandleSubmitReport_OtherLeaderForbidden(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	owner := fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)
	other := fixtures.CreateCellLeader("李小明", "ming@example.com", "G34", 3, nil)
	g := fixtures.CreateGroup(owner.ID, models.CategoryOpenCell, "")

	post(t, "/groups/"+g.ID+"/reports", map[string]string{"id": g.ID}, url.Values{
		"gathering_date": {"2026-08-27"},
	}, sessionFor(other), h.HandleSubmitReport)

	list, _ := store.ListForGroup(g.ID)
	if len(list) != 0 {
		t.Errorf("another leader should not report for this group, got %d", len(list))
	}
}

func TestHandleQuickAddMember_EnrollsAndMarksAttended(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)
	db := fixtures.DB()
	leader := fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)
	g := fixtures.CreateGroup(leader.ID, models.CategoryOpenCell, "")
	existing := fixtures.CreateMember("張三", "91234001", g.ID)

	rec := post(t, "/groups/"+g.ID+"/reports/members", map[string]string{"id": g.ID}, url.Values{
		"chinese_name":   {"新朋友"},
		"phone_number":   {"91234009"},
		"attended":       {existing.ID},
		"gathering_date": {"2026-08-27"},
	}, sessionFor(leader), h.HandleQuickAddMember)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}

	members := memberstore.New(db).ListForGroup(g.ID)
	if len(members) != 2 {
		t.Fatalf("expected two enrolled members, got %d", len(members))
	}

	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "attended=") || !strings.Contains(loc, existing.ID) {
		t.Errorf("redirect should carry the attended selection, got %q", loc)
	}
	if !strings.Contains(loc, "date=2026-08-27") {
		t.Errorf("redirect should carry the in-flight date, got %q", loc)
	}
}

func TestHandleEditReport_Replaces(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	leader := fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)
	g := fixtures.CreateGroup(leader.ID, models.CategoryOpenCell, "")
	rep := fixtures.AddReport(g.ID, "2026-08-20", 8)

	rec := post(t, "/groups/"+g.ID+"/reports/"+rep.ID+"/edit",
		map[string]string{"id": g.ID, "reportID": rep.ID}, url.Values{
			"gathering_date":   {"2026-08-21"},
			"attendance_count": {"11"},
			"notes":            {"moved a day"},
		}, sessionFor(leader), h.HandleEditReport)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}

	list, _ := store.ListForGroup(g.ID)
	if len(list) != 1 {
		t.Fatalf("expected one report, got %d", len(list))
	}
	if list[0].GatheringDate != "2026-08-21" || list[0].AttendanceCount != 11 {
		t.Errorf("report not updated: %+v", list[0])
	}
	if list[0].Notes != "moved a day" {
		t.Errorf("notes: got %q", list[0].Notes)
	}
}

func TestHandleDeleteReport_Removes(t *testing.T) {
	h, fixtures, store := newTestHandler(t)
	leader := fixtures.CreateCellLeader("陳大文", "david@example.com", "G12", 3, nil)
	g := fixtures.CreateGroup(leader.ID, models.CategoryOpenCell, "")
	rep := fixtures.AddReport(g.ID, "2026-08-20", 8)

	rec := post(t, "/groups/"+g.ID+"/reports/"+rep.ID+"/delete",
		map[string]string{"id": g.ID, "reportID": rep.ID}, nil,
		sessionFor(leader), h.HandleDeleteReport)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}

	list, _ := store.ListForGroup(g.ID)
	if len(list) != 0 {
		t.Errorf("report should be gone, got %d", len(list))
	}
}
