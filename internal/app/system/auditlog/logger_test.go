package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/church611/shepherdview/internal/app/system/auditlog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(cfg auditlog.Config) (*auditlog.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return auditlog.New(zap.New(core), cfg), logs
}

func fieldString(entry observer.LoggedEntry, key string) string {
	for _, f := range entry.Context {
		if f.Key == key {
			return f.String
		}
	}
	return ""
}

func TestLogger_NilLogger(t *testing.T) {
	// nil logger should be a no-op (not panic)
	var logger *auditlog.Logger
	req := httptest.NewRequest("GET", "/", nil)

	logger.Log(auditlog.Event{EventType: "test"})
	logger.LoginSuccess(req, "l1", "admin@611.org")
	logger.Logout(req, "l1")
}

func TestLogger_Log_ConfigOff(t *testing.T) {
	logger, logs := newObservedLogger(auditlog.Config{Auth: "off", Admin: "off"})

	logger.Log(auditlog.Event{
		Category:  auditlog.CategoryAuth,
		EventType: auditlog.EventLoginSuccess,
		Success:   true,
	})
	logger.Log(auditlog.Event{
		Category:  auditlog.CategoryAdmin,
		EventType: auditlog.EventLeaderCreated,
		Success:   true,
	})

	if logs.Len() != 0 {
		t.Errorf("expected no log entries when config is 'off', got %d", logs.Len())
	}
}

func TestLogger_Log_ConfigLog(t *testing.T) {
	logger, logs := newObservedLogger(auditlog.Config{Auth: "log", Admin: "log"})

	logger.Log(auditlog.Event{
		Category:  auditlog.CategoryAuth,
		EventType: auditlog.EventLoginSuccess,
		TargetID:  "l1",
		Success:   true,
	})

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Level != zapcore.InfoLevel {
		t.Errorf("expected info level for successful event, got %v", entry.Level)
	}
	if got := fieldString(entry, "event_type"); got != auditlog.EventLoginSuccess {
		t.Errorf("event_type: got %q, want %q", got, auditlog.EventLoginSuccess)
	}
	if got := fieldString(entry, "target_id"); got != "l1" {
		t.Errorf("target_id: got %q, want %q", got, "l1")
	}
}

func TestLogger_FailureLogsAsWarning(t *testing.T) {
	logger, logs := newObservedLogger(auditlog.Config{Auth: "log"})

	req := httptest.NewRequest("GET", "/", nil)
	logger.LoginFailedNotFound(req, "unknown@example.com")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Level != zapcore.WarnLevel {
		t.Errorf("expected warn level for failed event, got %v", entry.Level)
	}
	if got := fieldString(entry, "failure_reason"); got != "leader not found" {
		t.Errorf("failure_reason: got %q, want %q", got, "leader not found")
	}
	if got := fieldString(entry, "detail_attempted_login_id"); got != "unknown@example.com" {
		t.Errorf("detail_attempted_login_id: got %q, want %q", got, "unknown@example.com")
	}
}

func TestLogger_AuthCategoryFilteredByConfig(t *testing.T) {
	logger, logs := newObservedLogger(auditlog.Config{Auth: "off", Admin: "log"})

	req := httptest.NewRequest("GET", "/", nil)

	// Auth event should be skipped
	logger.LoginSuccess(req, "l1", "admin@611.org")

	// Admin event should be logged
	logger.LeaderCreated(req, "l1", "張O年", "l42", "GJA")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if got := fieldString(entry, "event_type"); got != auditlog.EventLeaderCreated {
		t.Errorf("event_type: got %q, want %q", got, auditlog.EventLeaderCreated)
	}
	if got := fieldString(entry, "actor_name"); got != "張O年" {
		t.Errorf("actor_name: got %q, want %q", got, "張O年")
	}
	if got := fieldString(entry, "detail_mg_code"); got != "GJA" {
		t.Errorf("detail_mg_code: got %q, want %q", got, "GJA")
	}
}

func TestLogger_UnknownCategoryAlwaysLogged(t *testing.T) {
	logger, logs := newObservedLogger(auditlog.Config{Auth: "off", Admin: "off"})

	logger.Log(auditlog.Event{Category: "other", EventType: "custom", Success: true})

	if logs.Len() != 1 {
		t.Errorf("expected unknown category to log, got %d entries", logs.Len())
	}
}

func TestLogger_LeaderTransferred(t *testing.T) {
	logger, logs := newObservedLogger(auditlog.Config{Admin: "log"})

	req := httptest.NewRequest("GET", "/", nil)
	logger.LeaderTransferred(req, "l1", "張O年", "l19", "陳O怡", "張O年", "Pastoral restructure")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if got := fieldString(entry, "detail_to_parent"); got != "張O年" {
		t.Errorf("detail_to_parent: got %q, want %q", got, "張O年")
	}
	if got := fieldString(entry, "detail_reason"); got != "Pastoral restructure" {
		t.Errorf("detail_reason: got %q, want %q", got, "Pastoral restructure")
	}
}

func TestLogger_LeadersImported(t *testing.T) {
	logger, logs := newObservedLogger(auditlog.Config{Admin: "log"})

	req := httptest.NewRequest("GET", "/", nil)
	logger.LeadersImported(req, "l1", "張O年", 3, 2, 1)

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if got := fieldString(entry, "detail_created"); got != "3" {
		t.Errorf("detail_created: got %q, want %q", got, "3")
	}
	if got := fieldString(entry, "detail_updated"); got != "2" {
		t.Errorf("detail_updated: got %q, want %q", got, "2")
	}
}

func TestGetClientIP_XForwardedFor(t *testing.T) {
	logger, logs := newObservedLogger(auditlog.Config{Auth: "log"})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.195")
	req.Header.Set("X-Real-IP", "192.168.1.1")
	req.RemoteAddr = "127.0.0.1:12345"

	logger.LoginSuccess(req, "l1", "admin@611.org")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	// X-Forwarded-For takes precedence
	if got := fieldString(logs.All()[0], "ip"); got != "203.0.113.195" {
		t.Errorf("ip: got %q, want %q", got, "203.0.113.195")
	}
}

func TestGetClientIP_XRealIP(t *testing.T) {
	logger, logs := newObservedLogger(auditlog.Config{Auth: "log"})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "192.168.1.100")
	req.RemoteAddr = "127.0.0.1:12345"

	logger.LoginSuccess(req, "l1", "admin@611.org")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	if got := fieldString(logs.All()[0], "ip"); got != "192.168.1.100" {
		t.Errorf("ip: got %q, want %q", got, "192.168.1.100")
	}
}

func TestGetClientIP_RemoteAddr(t *testing.T) {
	logger, logs := newObservedLogger(auditlog.Config{Auth: "log"})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5:12345"

	logger.LoginSuccess(req, "l1", "admin@611.org")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	if got := fieldString(logs.All()[0], "ip"); got != "10.0.0.5:12345" {
		t.Errorf("ip: got %q, want %q", got, "10.0.0.5:12345")
	}
}
