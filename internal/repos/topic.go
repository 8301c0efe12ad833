package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/types"
)

type TopicRepo interface {
	Get(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error)
	GetNames(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) (map[uuid.UUID]string, error)
	Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) error
	List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error)
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return &topicRepo{
		db:  db,
		log: baseLog.With("repo", "TopicRepo"),
	}
}

func (r *topicRepo) Get(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if topicID == uuid.Nil {
		return nil, nil
	}
	var row types.Topic
	err := transaction.WithContext(ctx).
		Where("id = ?", topicID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *topicRepo) GetNames(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	names := make(map[uuid.UUID]string, len(topicIDs))
	if len(topicIDs) == 0 {
		return names, nil
	}
	var rows []*types.Topic
	err := transaction.WithContext(ctx).
		Where("id IN ?", topicIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

func (r *topicRepo) Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if topic.ID == uuid.Nil {
		topic.ID = uuid.New()
	}
	return transaction.WithContext(ctx).Create(topic).Error
}

func (r *topicRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Topic
	err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}
