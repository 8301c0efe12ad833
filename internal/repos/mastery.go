package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/types"
)

// MasteryRepo owns the one-row-per-(user,topic) mastery records. The unique
// index on (user_id, topic_id) plus the OnConflict upsert is what serializes
// racing writers for the same pair.
type MasteryRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) (*types.Mastery, error)
	Upsert(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID, score float64) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Mastery, error)
}

type masteryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasteryRepo(db *gorm.DB, baseLog *logger.Logger) MasteryRepo {
	return &masteryRepo{
		db:  db,
		log: baseLog.With("repo", "MasteryRepo"),
	}
}

func (r *masteryRepo) Get(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) (*types.Mastery, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil || topicID == uuid.Nil {
		return nil, nil
	}
	var row types.Mastery
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
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

func (r *masteryRepo) Upsert(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID, score float64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now().UTC()
	row := &types.Mastery{
		ID:        uuid.New(),
		UserID:    userID,
		TopicID:   topicID,
		Score:     score,
		UpdatedAt: now,
	}
	// On conflict, overwrite score/updated_at only; the row identity stays.
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).
		Create(row).Error
}

func (r *masteryRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Mastery, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Mastery
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	return rows, err
}
