package app

import (
	"github.com/gin-gonic/gin"

	"github.com/conceptpulse/conceptpulse-backend/internal/server"
)

func wireRouter(handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:      handlers.Auth,
		AuthMiddleware:   middleware.Auth,
		UserHandler:      handlers.User,
		TopicHandler:     handlers.Topic,
		AttemptHandler:   handlers.Attempt,
		RevisionHandler:  handlers.Revision,
		DashboardHandler: handlers.Dashboard,
	})
}
