package app

import (
	"github.com/conceptpulse/conceptpulse-backend/internal/handlers"
	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Topic     *handlers.TopicHandler
	Attempt   *handlers.AttemptHandler
	Revision  *handlers.RevisionHandler
	Dashboard *handlers.DashboardHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:      handlers.NewAuthHandler(services.Auth),
		User:      handlers.NewUserHandler(services.User),
		Topic:     handlers.NewTopicHandler(services.Topic),
		Attempt:   handlers.NewAttemptHandler(log, services.Attempt),
		Revision:  handlers.NewRevisionHandler(log, services.Revision),
		Dashboard: handlers.NewDashboardHandler(log, services.Progress),
	}
}
