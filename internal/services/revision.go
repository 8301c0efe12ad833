package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conceptpulse/conceptpulse-backend/internal/apperr"
	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/repos"
	"github.com/conceptpulse/conceptpulse-backend/internal/srs"
	"github.com/conceptpulse/conceptpulse-backend/internal/types"
)

// RevisionService owns the per-(user,topic) schedule lifecycle: unscheduled
// pairs move to scheduled exactly once, scheduled pairs loop through reviews
// forever. The scheduler math itself lives in the srs package.
type RevisionService interface {
	ScheduleInitialReview(ctx context.Context, userID, topicID uuid.UUID) (*types.RevisionSchedule, error)
	LogReview(ctx context.Context, userID, topicID uuid.UUID, quality int) (*types.RevisionSchedule, error)
	ListDue(ctx context.Context, userID uuid.UUID, asOf time.Time) ([]*types.RevisionSchedule, error)
	ListWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*types.RevisionSchedule, error)
}

type revisionService struct {
	db           *gorm.DB
	log          *logger.Logger
	topicRepo    repos.TopicRepo
	scheduleRepo repos.ScheduleRepo
	now          func() time.Time
}

func NewRevisionService(db *gorm.DB, log *logger.Logger, topicRepo repos.TopicRepo, scheduleRepo repos.ScheduleRepo) RevisionService {
	return &revisionService{
		db:           db,
		log:          log.With("service", "RevisionService"),
		topicRepo:    topicRepo,
		scheduleRepo: scheduleRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *revisionService) ScheduleInitialReview(ctx context.Context, userID, topicID uuid.UUID) (*types.RevisionSchedule, error) {
	if userID == uuid.Nil || topicID == uuid.Nil {
		return nil, apperr.InvalidArgument("missing_identifier", nil)
	}

	topic, err := s.topicRepo.Get(ctx, nil, topicID)
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if topic == nil {
		return nil, apperr.NotFound("topic_not_found", fmt.Errorf("topic %s for user %s", topicID, userID))
	}

	existing, err := s.scheduleRepo.Get(ctx, nil, userID, topicID)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	if existing != nil {
		return nil, apperr.AlreadyExists("already_scheduled", fmt.Errorf("topic %s for user %s", topicID, userID))
	}

	now := s.now()
	state := srs.NewState(now)
	state.ScheduleFirstReview(now)

	schedule := &types.RevisionSchedule{
		ID:            uuid.New(),
		UserID:        userID,
		TopicID:       topicID,
		EaseFactor:    state.EaseFactor,
		Interval:      state.Interval,
		Repetitions:   state.Repetitions,
		ScheduledDate: state.ScheduledDate,
	}
	err = withConflictRetry(s.log, func() error {
		return s.scheduleRepo.Create(ctx, nil, schedule)
	})
	if err != nil {
		// Two requests can race past the existence check; the unique index
		// decides, and the loser surfaces the same AlreadyExists.
		if repos.IsDuplicate(err) {
			return nil, apperr.AlreadyExists("already_scheduled", fmt.Errorf("topic %s for user %s", topicID, userID))
		}
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.log.Info("Initial review scheduled", "user_id", userID, "topic", topic.Name, "scheduled_date", schedule.ScheduledDate)
	return schedule, nil
}

func (s *revisionService) LogReview(ctx context.Context, userID, topicID uuid.UUID, quality int) (*types.RevisionSchedule, error) {
	if userID == uuid.Nil || topicID == uuid.Nil {
		return nil, apperr.InvalidArgument("missing_identifier", nil)
	}
	if quality < 0 || quality > 5 {
		return nil, apperr.InvalidArgument("invalid_quality", fmt.Errorf("quality %d out of [0,5] for topic %s, user %s", quality, topicID, userID))
	}

	var schedule *types.RevisionSchedule
	err := withConflictRetry(s.log, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			row, err := s.scheduleRepo.Get(ctx, tx, userID, topicID)
			if err != nil {
				return fmt.Errorf("load schedule: %w", err)
			}
			if row == nil {
				return apperr.NotFound("no_schedule_found", fmt.Errorf("topic %s for user %s", topicID, userID))
			}

			state := srs.State{
				EaseFactor:    row.EaseFactor,
				Interval:      row.Interval,
				Repetitions:   row.Repetitions,
				ScheduledDate: row.ScheduledDate,
			}
			if err := state.Review(quality, s.now()); err != nil {
				return apperr.InvalidArgument("invalid_quality", err)
			}

			row.EaseFactor = state.EaseFactor
			row.Interval = state.Interval
			row.Repetitions = state.Repetitions
			row.ScheduledDate = state.ScheduledDate
			if err := s.scheduleRepo.Update(ctx, tx, row); err != nil {
				return fmt.Errorf("update schedule: %w", err)
			}
			schedule = row
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Review logged", "user_id", userID, "topic_id", topicID, "quality", quality, "next_review", schedule.ScheduledDate)
	return schedule, nil
}

func (s *revisionService) ListDue(ctx context.Context, userID uuid.UUID, asOf time.Time) ([]*types.RevisionSchedule, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	return s.scheduleRepo.ListDueBefore(ctx, nil, userID, asOf)
}

func (s *revisionService) ListWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*types.RevisionSchedule, error) {
	return s.scheduleRepo.ListDueBetween(ctx, nil, userID, from, to)
}
