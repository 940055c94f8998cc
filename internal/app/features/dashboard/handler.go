// internal/app/features/dashboard/handler.go
package dashboard

import (
	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/store/memdb"
	"go.uber.org/zap"
)

// Handler serves the attendance and leadership-network dashboard.
type Handler struct {
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
	Leaders *leaderstore.Store
}

// NewHandler constructs a dashboard Handler. It is called from the
// bootstrap BuildHandler function with the shared store and logger.
func NewHandler(db *memdb.DB, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:     logger,
		ErrLog:  errLog,
		Leaders: leaderstore.New(db),
	}
}
