package app

import (
	"gorm.io/gorm"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/repos"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Topic     repos.TopicRepo
	Attempt   repos.AttemptRepo
	Mastery   repos.MasteryRepo
	Schedule  repos.ScheduleRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Topic:     repos.NewTopicRepo(db, log),
		Attempt:   repos.NewAttemptRepo(db, log),
		Mastery:   repos.NewMasteryRepo(db, log),
		Schedule:  repos.NewScheduleRepo(db, log),
	}
}
