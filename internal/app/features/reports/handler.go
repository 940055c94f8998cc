// internal/app/features/reports/handler.go
package reports

import (
	"net/http"

	uierrors "github.com/church611/shepherdview/internal/app/features/errors"
	groupstore "github.com/church611/shepherdview/internal/app/store/groups"
	"github.com/church611/shepherdview/internal/app/store/memdb"
	memberstore "github.com/church611/shepherdview/internal/app/store/members"
	reportstore "github.com/church611/shepherdview/internal/app/store/reports"
	"github.com/church611/shepherdview/internal/app/system/auditlog"
	"github.com/church611/shepherdview/internal/app/system/auth"
	"github.com/church611/shepherdview/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler carries the attendance report endpoints for a single group.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Groups   *groupstore.Store
	Reports  *reportstore.Store
	Members  *memberstore.Store
}

// NewHandler constructs a reports Handler. It is called from the
// bootstrap BuildHandler function with the shared store and logger.
func NewHandler(db *memdb.DB, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Groups:   groupstore.New(db),
		Reports:  reportstore.New(db),
		Members:  memberstore.New(db),
	}
}

// loadOwnedGroup fetches the route's group and enforces that the
// current user owns it. Admins may manage any group's reports.
func (h *Handler) loadOwnedGroup(w http.ResponseWriter, r *http.Request) (models.CellGroup, *auth.SessionUser, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return models.CellGroup{}, nil, false
	}

	groupID := chi.URLParam(r, "id")
	g, ownerID, err := h.Groups.Get(groupID)
	if err != nil {
		uierrors.RenderNotFound(w, r, "That group could not be found.", "/groups")
		return models.CellGroup{}, nil, false
	}
	if ownerID != user.ID && !user.IsAdmin {
		uierrors.RenderForbidden(w, r, "You can only manage reports for your own groups.", "/groups")
		return models.CellGroup{}, nil, false
	}

	return g, user, true
}
