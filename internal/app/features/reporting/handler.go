// internal/app/features/reporting/handler.go
package reporting

import (
	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/store/memdb"
	"github.com/church611/shepherdview/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler serves the reporting-status (delinquency) list: leaders who
// have not reported recently, with WhatsApp reminders and follow-up
// notes.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Leaders  *leaderstore.Store

	WhatsAppCountryCode string
	BaseURL             string
}

// NewHandler constructs a reporting Handler. It is called from the
// bootstrap BuildHandler function with the shared store and logger.
func NewHandler(db *memdb.DB, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, countryCode, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:                 logger,
		ErrLog:              errLog,
		AuditLog:            audit,
		Leaders:             leaderstore.New(db),
		WhatsAppCountryCode: countryCode,
		BaseURL:             baseURL,
	}
}
