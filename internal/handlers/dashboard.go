package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/requestdata"
	"github.com/conceptpulse/conceptpulse-backend/internal/services"
)

type DashboardHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
}

func NewDashboardHandler(log *logger.Logger, progressService services.ProgressService) *DashboardHandler {
	return &DashboardHandler{
		log:             log.With("handler", "DashboardHandler"),
		progressService: progressService,
	}
}

// GET /api/v1/progress/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	stats, err := h.progressService.GetDashboardStats(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, stats)
}
