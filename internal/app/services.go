package app

import (
	"gorm.io/gorm"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Topic    services.TopicService
	Attempt  services.AttemptService
	Revision services.RevisionService
	Progress services.ProgressService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	authService := services.NewAuthService(
		db, log,
		repos.User,
		repos.UserToken,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	userService := services.NewUserService(db, log, repos.User)
	topicService := services.NewTopicService(db, log, repos.Topic)
	attemptService := services.NewAttemptService(db, log, repos.Attempt, repos.Mastery)
	revisionService := services.NewRevisionService(db, log, repos.Topic, repos.Schedule)
	progressService := services.NewProgressService(
		log,
		repos.Mastery,
		repos.Schedule,
		repos.Attempt,
		repos.Topic,
		clients.Redis,
		cfg.DashboardCacheTTL,
	)

	return Services{
		Auth:     authService,
		User:     userService,
		Topic:    topicService,
		Attempt:  attemptService,
		Revision: revisionService,
		Progress: progressService,
	}
}
