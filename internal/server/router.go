package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/conceptpulse/conceptpulse-backend/internal/handlers"
	"github.com/conceptpulse/conceptpulse-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	UserHandler      *handlers.UserHandler
	TopicHandler     *handlers.TopicHandler
	AttemptHandler   *handlers.AttemptHandler
	RevisionHandler  *handlers.RevisionHandler
	DashboardHandler *handlers.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(otelgin.Middleware("conceptpulse"))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthz", handlers.HealthCheck)
	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api/v1")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/users/me", cfg.UserHandler.GetMe)
	protected.POST("/users/update", cfg.UserHandler.Update)
	// Topics
	protected.GET("/topics", cfg.TopicHandler.List)
	protected.POST("/topics", cfg.TopicHandler.Create)
	// Attempts
	protected.POST("/attempts/submit", cfg.AttemptHandler.Submit)
	protected.POST("/offline/sync", cfg.AttemptHandler.SyncOffline)
	// Revision
	protected.POST("/revision/schedule/:topicID", cfg.RevisionHandler.ScheduleInitial)
	protected.POST("/revision/log-review/:topicID", cfg.RevisionHandler.LogReview)
	protected.GET("/revision/upcoming", cfg.RevisionHandler.Upcoming)
	// Dashboard
	protected.GET("/progress/stats", cfg.DashboardHandler.Stats)

	return router
}
