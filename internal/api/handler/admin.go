package handler

import (
	"net/http"

	"github.com/founder-srm/foundathon/internal/api/response"
	"github.com/founder-srm/foundathon/internal/services/stats"
)

// AdminHandler handles organiser-only endpoints
type AdminHandler struct {
	statsService *stats.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(statsService *stats.Service) *AdminHandler {
	return &AdminHandler{
		statsService: statsService,
	}
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.statsService.Overview(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsResponseFromOverview(overview))
}
