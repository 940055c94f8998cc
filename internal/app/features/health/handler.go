package health

import (
	"encoding/json"
	"net/http"

	"github.com/church611/shepherdview/internal/app/store/memdb"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Store *memdb.DB
	Log   *zap.Logger
}

// NewHandler constructs a health Handler with the data store and logger.
func NewHandler(store *memdb.DB, logger *zap.Logger) *Handler {
	return &Handler{
		Store: store,
		Log:   logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Store   string `json:"store"`
	Leaders int    `json:"leaders"`
	Message string `json:"message,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "store":"ready", "leaders":42 }
//
// A missing store reports 503 so orchestrators hold traffic until the
// dataset is loaded.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.Store == nil {
		h.Log.Error("health-check: store not initialized")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:  "error",
			Store:   "unavailable",
			Message: "Data store not initialized",
		})
		return
	}

	resp := healthResponse{
		Status: "ok",
		Store:  "ready",
	}
	h.Store.View(func(s *memdb.State) {
		resp.Leaders = len(s.Leaders)
	})

	_ = json.NewEncoder(w).Encode(resp)
}
