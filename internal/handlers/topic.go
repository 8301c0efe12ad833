package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/conceptpulse/conceptpulse-backend/internal/services"
)

type TopicHandler struct {
	topicService services.TopicService
}

func NewTopicHandler(topicService services.TopicService) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

// GET /api/v1/topics
func (h *TopicHandler) List(c *gin.Context) {
	topics, err := h.topicService.ListTopics(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, topics)
}

// POST /api/v1/topics
func (h *TopicHandler) Create(c *gin.Context) {
	var body struct {
		Name    string `json:"name" binding:"required"`
		Subject string `json:"subject"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondBadRequest(c, "invalid_body", err)
		return
	}
	topic, err := h.topicService.CreateTopic(c.Request.Context(), body.Name, body.Subject)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, topic)
}
