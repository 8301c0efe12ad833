package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/requestdata"
	"github.com/conceptpulse/conceptpulse-backend/internal/services"
	"github.com/conceptpulse/conceptpulse-backend/internal/utils"
)

type RevisionHandler struct {
	log             *logger.Logger
	revisionService services.RevisionService
}

func NewRevisionHandler(log *logger.Logger, revisionService services.RevisionService) *RevisionHandler {
	return &RevisionHandler{
		log:             log.With("handler", "RevisionHandler"),
		revisionService: revisionService,
	}
}

// POST /api/v1/revision/schedule/:topicID
// Schedule the first (day-1) review for a topic.
func (h *RevisionHandler) ScheduleInitial(c *gin.Context) {
	topicID, err := uuid.Parse(c.Param("topicID"))
	if err != nil {
		RespondBadRequest(c, "invalid_topic_id", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	schedule, err := h.revisionService.ScheduleInitialReview(c.Request.Context(), userID, topicID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, schedule)
}

// POST /api/v1/revision/log-review/:topicID
// Apply one self-rated review and reschedule.
func (h *RevisionHandler) LogReview(c *gin.Context) {
	topicID, err := uuid.Parse(c.Param("topicID"))
	if err != nil {
		RespondBadRequest(c, "invalid_topic_id", err)
		return
	}
	var body struct {
		Quality *int `json:"quality" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondBadRequest(c, "invalid_body", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	schedule, err := h.revisionService.LogReview(c.Request.Context(), userID, topicID, *body.Quality)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, schedule)
}

// GET /api/v1/revision/upcoming?days=N
// Without days: everything due as of now. With days: due within [now, now+N].
func (h *RevisionHandler) Upcoming(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	ctx := c.Request.Context()
	now := time.Now().UTC()

	days := utils.ParseIntQuery(c.Query("days"), 0)
	if days > 0 {
		schedules, err := h.revisionService.ListWindow(ctx, userID, now, now.AddDate(0, 0, days))
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, schedules)
		return
	}

	schedules, err := h.revisionService.ListDue(ctx, userID, now)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, schedules)
}
