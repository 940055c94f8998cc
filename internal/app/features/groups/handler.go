// internal/app/features/groups/handler.go
package groups

import (
	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	groupstore "github.com/church611/shepherdview/internal/app/store/groups"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/store/memdb"
	"github.com/church611/shepherdview/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Groups   *groupstore.Store
	Leaders  *leaderstore.Store
}

// NewHandler constructs a groups Handler. It is called from the
// bootstrap BuildHandler function with the shared store and logger.
func NewHandler(db *memdb.DB, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Groups:   groupstore.New(db),
		Leaders:  leaderstore.New(db),
	}
}
