// internal/app/features/leaders/handler.go
package leaders

import (
	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	groupstore "github.com/church611/shepherdview/internal/app/store/groups"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/store/memdb"
	"github.com/church611/shepherdview/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler owns the admin leader-management handlers.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Leaders  *leaderstore.Store
	Groups   *groupstore.Store

	// WhatsAppCountryCode prefixes outreach links, e.g. "852".
	WhatsAppCountryCode string
	// BaseURL is substituted into reminder message templates.
	BaseURL string
}

func NewHandler(db *memdb.DB, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, countryCode, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:                 logger,
		ErrLog:              errLog,
		AuditLog:            audit,
		Leaders:             leaderstore.New(db),
		Groups:              groupstore.New(db),
		WhatsAppCountryCode: countryCode,
		BaseURL:             baseURL,
	}
}
