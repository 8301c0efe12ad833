package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conceptpulse/conceptpulse-backend/internal/apperr"
	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/repos"
	"github.com/conceptpulse/conceptpulse-backend/internal/types"
)

type TopicService interface {
	CreateTopic(ctx context.Context, name, subject string) (*types.Topic, error)
	ListTopics(ctx context.Context) ([]*types.Topic, error)
	GetTopic(ctx context.Context, topicID uuid.UUID) (*types.Topic, error)
}

type topicService struct {
	db        *gorm.DB
	log       *logger.Logger
	topicRepo repos.TopicRepo
}

func NewTopicService(db *gorm.DB, log *logger.Logger, topicRepo repos.TopicRepo) TopicService {
	return &topicService{
		db:        db,
		log:       log.With("service", "TopicService"),
		topicRepo: topicRepo,
	}
}

func (s *topicService) CreateTopic(ctx context.Context, name, subject string) (*types.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.InvalidArgument("missing_topic_name", nil)
	}
	topic := &types.Topic{
		ID:      uuid.New(),
		Name:    name,
		Subject: strings.TrimSpace(subject),
	}
	if err := s.topicRepo.Create(ctx, nil, topic); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	s.log.Info("Topic created", "topic", topic.Name)
	return topic, nil
}

func (s *topicService) ListTopics(ctx context.Context) ([]*types.Topic, error) {
	return s.topicRepo.List(ctx, nil)
}

func (s *topicService) GetTopic(ctx context.Context, topicID uuid.UUID) (*types.Topic, error) {
	topic, err := s.topicRepo.Get(ctx, nil, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apperr.NotFound("topic_not_found", fmt.Errorf("topic %s", topicID))
	}
	return topic, nil
}
