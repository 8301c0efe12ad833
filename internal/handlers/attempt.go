package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/requestdata"
	"github.com/conceptpulse/conceptpulse-backend/internal/services"
)

type AttemptHandler struct {
	log            *logger.Logger
	attemptService services.AttemptService
}

func NewAttemptHandler(log *logger.Logger, attemptService services.AttemptService) *AttemptHandler {
	return &AttemptHandler{
		log:            log.With("handler", "AttemptHandler"),
		attemptService: attemptService,
	}
}

// POST /api/v1/attempts/submit
// Log a single online attempt and refresh the topic's mastery score.
func (h *AttemptHandler) Submit(c *gin.Context) {
	var in services.SubmitAttemptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondBadRequest(c, "invalid_body", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	result, err := h.attemptService.SubmitAttempt(c.Request.Context(), userID, in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, result)
}

// POST /api/v1/offline/sync
// Replay an offline attempt queue. Entries are decoded one by one so a
// malformed entry is skipped instead of failing the batch.
func (h *AttemptHandler) SyncOffline(c *gin.Context) {
	var body struct {
		Attempts []json.RawMessage `json:"attempts"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondBadRequest(c, "invalid_body", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	count, err := h.attemptService.SyncOfflineAttempts(c.Request.Context(), userID, body.Attempts)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "synced", "count": count})
}
