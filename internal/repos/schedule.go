package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/types"
)

// ScheduleRepo owns the one-row-per-(user,topic) revision schedules.
// Create relies on the unique (user_id, topic_id) index: a second insert for
// the same pair fails with a duplicate error rather than silently racing.
type ScheduleRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) (*types.RevisionSchedule, error)
	Create(ctx context.Context, tx *gorm.DB, schedule *types.RevisionSchedule) error
	Update(ctx context.Context, tx *gorm.DB, schedule *types.RevisionSchedule) error
	ListDueBefore(ctx context.Context, tx *gorm.DB, userID uuid.UUID, asOf time.Time) ([]*types.RevisionSchedule, error)
	ListDueBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.RevisionSchedule, error)
}

type scheduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScheduleRepo(db *gorm.DB, baseLog *logger.Logger) ScheduleRepo {
	return &scheduleRepo{
		db:  db,
		log: baseLog.With("repo", "ScheduleRepo"),
	}
}

func (r *scheduleRepo) Get(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) (*types.RevisionSchedule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil || topicID == uuid.Nil {
		return nil, nil
	}
	var row types.RevisionSchedule
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

func (r *scheduleRepo) Create(ctx context.Context, tx *gorm.DB, schedule *types.RevisionSchedule) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	return transaction.WithContext(ctx).Create(schedule).Error
}

// Update overwrites the four scheduler fields verbatim.
func (r *scheduleRepo) Update(ctx context.Context, tx *gorm.DB, schedule *types.RevisionSchedule) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.RevisionSchedule{}).
		Where("id = ?", schedule.ID).
		Updates(map[string]interface{}{
			"ease_factor":    schedule.EaseFactor,
			"interval":       schedule.Interval,
			"repetitions":    schedule.Repetitions,
			"scheduled_date": schedule.ScheduledDate,
			"updated_at":     time.Now().UTC(),
		}).Error
}

func (r *scheduleRepo) ListDueBefore(ctx context.Context, tx *gorm.DB, userID uuid.UUID, asOf time.Time) ([]*types.RevisionSchedule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.RevisionSchedule
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND scheduled_date <= ?", userID, asOf).
		Order("scheduled_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *scheduleRepo) ListDueBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.RevisionSchedule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.RevisionSchedule
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND scheduled_date >= ? AND scheduled_date <= ?", userID, from, to).
		Order("scheduled_date ASC").
		Find(&rows).Error
	return rows, err
}
