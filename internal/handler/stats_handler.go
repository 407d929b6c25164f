package handler

import (
	"github.com/gin-gonic/gin"

	"menulens/internal/service"
)

// StatsHandler handles stats endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /api/v1/stats
// @Summary Get scan statistics
// @Description Get aggregate counts for scans by status, valid menus, restaurants, feedback, and learned correction patterns
// @Tags stats
// @Produce json
// @Success 200 {object} Response{data=domain.Stats} "Aggregate statistics"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
