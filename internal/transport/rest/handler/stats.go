package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"formforge/internal/service"
)

// StatsHandler handles creator dashboard stats
type StatsHandler struct {
	statsSvc *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsSvc *service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// GetUserStats handles GET /v1/stats/{userId}
func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	stats, err := h.statsSvc.GetUserStats(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not fetch user stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
