package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/conceptpulse/conceptpulse-backend/internal/requestdata"
	"github.com/conceptpulse/conceptpulse-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondBadRequest(c, "invalid_body", err)
		return
	}
	user, err := h.authService.RegisterUser(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, user)
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondBadRequest(c, "invalid_body", err)
		return
	}
	pair, err := h.authService.LoginUser(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, pair)
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if err := h.authService.LogoutUser(c.Request.Context(), userID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "logged out"})
}
