// internal/app/system/auditlog/logger.go
package auditlog

// Terminology: Leader Identifiers
//   - LeaderID / leaderID: The UUID that uniquely identifies a leader record
//   - LoginID / loginID: The email or phone number the leader typed to sign in

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// Event categories.
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Event types.
const (
	EventLoginSuccess         = "login_success"
	EventLoginFailedNotFound  = "login_failed_not_found"
	EventLoginFailedWrongPass = "login_failed_wrong_password"
	EventLoginFailedDisabled  = "login_failed_disabled"
	EventLoginRateLimited     = "login_rate_limited"
	EventLogout               = "logout"
	EventPasswordChanged      = "password_changed"
	EventPasswordReset        = "password_reset"
	EventLeaderCreated        = "leader_created"
	EventLeaderUpdated        = "leader_updated"
	EventLeaderDeleted        = "leader_deleted"
	EventLeaderTransferred    = "leader_transferred"
	EventLeaderStatusChanged  = "leader_status_changed"
	EventFollowUpAdded        = "follow_up_added"
	EventGroupCreated         = "group_created"
	EventGroupUpdated         = "group_updated"
	EventGroupDeleted         = "group_deleted"
	EventReportSubmitted      = "report_submitted"
	EventReportUpdated        = "report_updated"
	EventReportDeleted        = "report_deleted"
	EventMemberCreated        = "member_created"
	EventMemberUpdated        = "member_updated"
	EventMemberDeleted        = "member_deleted"
	EventMemberSelfRegistered = "member_self_registered"
	EventLeadersImported      = "leaders_imported"
)

// Event describes a single audit record.
type Event struct {
	Category      string
	EventType     string
	ActorID       string
	ActorName     string
	TargetID      string
	IP            string
	UserAgent     string
	Success       bool
	FailureReason string
	Details       map[string]string
}

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, logout, password).
	// Values: "log" (enabled) or "off" (disabled).
	Auth string
	// Admin controls logging for admin action events (leader/group/report/member
	// changes, transfers, imports). Values: "log" or "off".
	Admin string
}

// Logger writes audit events to the structured log. The in-memory data
// store has no durable audit collection, so the zap stream is the audit
// trail; ship it to your log aggregator in production.
type Logger struct {
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(zapLog *zap.Logger, config Config) *Logger {
	return &Logger{zapLog: zapLog, config: config}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(event Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case CategoryAuth:
		setting = l.config.Auth
	case CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "log"
	}
	if setting == "off" {
		return
	}

	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.ActorName != "" {
		fields = append(fields, zap.String("actor_name", event.ActorName))
	}
	if event.TargetID != "" {
		fields = append(fields, zap.String("target_id", event.TargetID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful sign-in.
func (l *Logger) LoginSuccess(r *http.Request, leaderID, loginID string) {
	l.Log(Event{
		Category:  CategoryAuth,
		EventType: EventLoginSuccess,
		TargetID:  leaderID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"login_id": loginID},
	})
}

// LoginFailedNotFound logs a sign-in attempt for an unknown login.
func (l *Logger) LoginFailedNotFound(r *http.Request, attemptedLoginID string) {
	l.Log(Event{
		Category:      CategoryAuth,
		EventType:     EventLoginFailedNotFound,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "leader not found",
		Details:       map[string]string{"attempted_login_id": attemptedLoginID},
	})
}

// LoginFailedWrongPassword logs a sign-in attempt with a bad password.
func (l *Logger) LoginFailedWrongPassword(r *http.Request, leaderID, loginID string) {
	l.Log(Event{
		Category:      CategoryAuth,
		EventType:     EventLoginFailedWrongPass,
		TargetID:      leaderID,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "wrong password",
		Details:       map[string]string{"login_id": loginID},
	})
}

// LoginFailedDisabled logs a sign-in attempt against a disabled account.
func (l *Logger) LoginFailedDisabled(r *http.Request, leaderID, loginID string) {
	l.Log(Event{
		Category:      CategoryAuth,
		EventType:     EventLoginFailedDisabled,
		TargetID:      leaderID,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "account disabled",
		Details:       map[string]string{"login_id": loginID},
	})
}

// LoginRateLimited logs a sign-in attempt blocked by the rate limiter.
func (l *Logger) LoginRateLimited(r *http.Request, attemptedLoginID string) {
	l.Log(Event{
		Category:      CategoryAuth,
		EventType:     EventLoginRateLimited,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "rate limited",
		Details:       map[string]string{"attempted_login_id": attemptedLoginID},
	})
}

// Logout logs a sign-out.
func (l *Logger) Logout(r *http.Request, leaderID string) {
	l.Log(Event{
		Category:  CategoryAuth,
		EventType: EventLogout,
		TargetID:  leaderID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// PasswordChanged logs a password change from the profile page.
func (l *Logger) PasswordChanged(r *http.Request, leaderID string) {
	l.Log(Event{
		Category:  CategoryAuth,
		EventType: EventPasswordChanged,
		TargetID:  leaderID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// PasswordReset logs a completed forgot-password reset.
func (l *Logger) PasswordReset(r *http.Request, leaderID, loginID string) {
	l.Log(Event{
		Category:  CategoryAuth,
		EventType: EventPasswordReset,
		TargetID:  leaderID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"login_id": loginID},
	})
}

// --- Admin Events ---

// adminEvent is the shared shape for most admin actions.
func (l *Logger) adminEvent(r *http.Request, eventType, actorID, actorName, targetID string, details map[string]string) {
	l.Log(Event{
		Category:  CategoryAdmin,
		EventType: eventType,
		ActorID:   actorID,
		ActorName: actorName,
		TargetID:  targetID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

// LeaderCreated logs when a leader record is created.
func (l *Logger) LeaderCreated(r *http.Request, actorID, actorName, leaderID, mgCode string) {
	l.adminEvent(r, EventLeaderCreated, actorID, actorName, leaderID,
		map[string]string{"mg_code": mgCode})
}

// LeaderUpdated logs when a leader record is edited.
func (l *Logger) LeaderUpdated(r *http.Request, actorID, actorName, leaderID string) {
	l.adminEvent(r, EventLeaderUpdated, actorID, actorName, leaderID, nil)
}

// LeaderDeleted logs when a leader record is removed.
func (l *Logger) LeaderDeleted(r *http.Request, actorID, actorName, leaderID string) {
	l.adminEvent(r, EventLeaderDeleted, actorID, actorName, leaderID, nil)
}

// LeaderTransferred logs a lineage transfer.
func (l *Logger) LeaderTransferred(r *http.Request, actorID, actorName, leaderID, fromParent, toParent, reason string) {
	l.adminEvent(r, EventLeaderTransferred, actorID, actorName, leaderID,
		map[string]string{"from_parent": fromParent, "to_parent": toParent, "reason": reason})
}

// LeaderStatusChanged logs an enable or disable.
func (l *Logger) LeaderStatusChanged(r *http.Request, actorID, actorName, leaderID, from, to, reason string) {
	l.adminEvent(r, EventLeaderStatusChanged, actorID, actorName, leaderID,
		map[string]string{"from": from, "to": to, "reason": reason})
}

// FollowUpAdded logs a pastoral follow-up note.
func (l *Logger) FollowUpAdded(r *http.Request, actorID, actorName, leaderID string) {
	l.adminEvent(r, EventFollowUpAdded, actorID, actorName, leaderID, nil)
}

// GroupCreated logs a new cell group.
func (l *Logger) GroupCreated(r *http.Request, actorID, actorName, groupID, groupName string) {
	l.adminEvent(r, EventGroupCreated, actorID, actorName, groupID,
		map[string]string{"group_name": groupName})
}

// GroupUpdated logs a cell group edit.
func (l *Logger) GroupUpdated(r *http.Request, actorID, actorName, groupID string) {
	l.adminEvent(r, EventGroupUpdated, actorID, actorName, groupID, nil)
}

// GroupDeleted logs a cell group soft delete.
func (l *Logger) GroupDeleted(r *http.Request, actorID, actorName, groupID, groupName string) {
	l.adminEvent(r, EventGroupDeleted, actorID, actorName, groupID,
		map[string]string{"group_name": groupName})
}

// ReportSubmitted logs a new weekly report.
func (l *Logger) ReportSubmitted(r *http.Request, actorID, actorName, groupID, gatheringDate string) {
	l.adminEvent(r, EventReportSubmitted, actorID, actorName, groupID,
		map[string]string{"gathering_date": gatheringDate})
}

// ReportUpdated logs a weekly report edit.
func (l *Logger) ReportUpdated(r *http.Request, actorID, actorName, groupID, reportID string) {
	l.adminEvent(r, EventReportUpdated, actorID, actorName, groupID,
		map[string]string{"report_id": reportID})
}

// ReportDeleted logs a weekly report removal.
func (l *Logger) ReportDeleted(r *http.Request, actorID, actorName, groupID, reportID string) {
	l.adminEvent(r, EventReportDeleted, actorID, actorName, groupID,
		map[string]string{"report_id": reportID})
}

// MemberCreated logs a new cell member record.
func (l *Logger) MemberCreated(r *http.Request, actorID, actorName, memberID string) {
	l.adminEvent(r, EventMemberCreated, actorID, actorName, memberID, nil)
}

// MemberUpdated logs a cell member edit.
func (l *Logger) MemberUpdated(r *http.Request, actorID, actorName, memberID string) {
	l.adminEvent(r, EventMemberUpdated, actorID, actorName, memberID, nil)
}

// MemberDeleted logs a cell member removal.
func (l *Logger) MemberDeleted(r *http.Request, actorID, actorName, memberID string) {
	l.adminEvent(r, EventMemberDeleted, actorID, actorName, memberID, nil)
}

// MemberSelfRegistered logs a public self-registration submission.
func (l *Logger) MemberSelfRegistered(r *http.Request, memberID string) {
	l.Log(Event{
		Category:  CategoryAdmin,
		EventType: EventMemberSelfRegistered,
		TargetID:  memberID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// LeadersImported logs a CSV import run with its merge counts.
func (l *Logger) LeadersImported(r *http.Request, actorID, actorName string, created, updated, skipped int) {
	l.adminEvent(r, EventLeadersImported, actorID, actorName, "",
		map[string]string{
			"created": intToString(created),
			"updated": intToString(updated),
			"skipped": intToString(skipped),
		})
}

func intToString(i int) string {
	return strconv.Itoa(i)
}
