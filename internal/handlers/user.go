package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/conceptpulse/conceptpulse-backend/internal/requestdata"
	"github.com/conceptpulse/conceptpulse-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	user, err := h.userService.GetMe(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}

// POST /api/v1/users/update
func (h *UserHandler) Update(c *gin.Context) {
	var in services.UpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondBadRequest(c, "invalid_body", err)
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}
