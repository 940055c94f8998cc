// internal/app/features/evaluation/handler.go
package evaluation

import (
	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	leaderstore "github.com/church611/shepherdview/internal/app/store/leaders"
	"github.com/church611/shepherdview/internal/app/store/memdb"
	"go.uber.org/zap"
)

// Handler serves the annual pastoral (AGM) evaluation table and its
// CSV export.
type Handler struct {
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
	Leaders *leaderstore.Store
}

// NewHandler constructs an evaluation Handler. It is called from the
// bootstrap BuildHandler function with the shared store and logger.
func NewHandler(db *memdb.DB, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:     logger,
		ErrLog:  errLog,
		Leaders: leaderstore.New(db),
	}
}
