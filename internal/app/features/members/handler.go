// internal/app/features/members/handler.go
package members

import (
	"time"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	groupstore "github.com/church611/shepherdview/internal/app/store/groups"
	"github.com/church611/shepherdview/internal/app/store/memdb"
	memberstore "github.com/church611/shepherdview/internal/app/store/members"
	"github.com/church611/shepherdview/internal/app/system/auditlog"
	"github.com/church611/shepherdview/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Handler carries the member directory and public registration
// endpoints.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Members  *memberstore.Store
	Groups   *groupstore.Store

	// RegLimiter throttles the public registration form per client IP.
	RegLimiter *ratelimit.Limiter
}

// NewHandler constructs a members Handler. It is called from the
// bootstrap BuildHandler function with the shared store and logger.
func NewHandler(db *memdb.DB, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		ErrLog:     errLog,
		AuditLog:   audit,
		Members:    memberstore.New(db),
		Groups:     groupstore.New(db),
		RegLimiter: ratelimit.New(5, 10*time.Minute),
	}
}
