package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/conceptpulse/conceptpulse-backend/internal/apperr"
	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/repos"
	"github.com/conceptpulse/conceptpulse-backend/internal/scoring"
	"github.com/conceptpulse/conceptpulse-backend/internal/types"
)

// SubmitAttemptInput is one synchronous online attempt.
type SubmitAttemptInput struct {
	TopicID     uuid.UUID  `json:"topicId" binding:"required"`
	QuestionID  *uuid.UUID `json:"questionId"`
	IsCorrect   bool       `json:"isCorrect"`
	SolvingTime *int       `json:"solvingTime"`
	Confidence  *float64   `json:"confidence"`
}

// OfflineAttemptPayload mirrors one entry of the frontend offline queue.
// Every field is optional so a partially-filled entry still decodes; the
// service applies the defaults and skips entries without a usable topic id.
type OfflineAttemptPayload struct {
	TopicID     *uuid.UUID `json:"topicId"`
	QuestionID  *uuid.UUID `json:"questionId"`
	IsCorrect   *bool      `json:"isCorrect"`
	SolvingTime *int       `json:"solvingTime"`
	Confidence  *float64   `json:"confidence"`
	CreatedAt   *string    `json:"createdAt"`
}

type SubmitAttemptResult struct {
	Attempt *types.Attempt `json:"attempt"`
	Mastery *types.Mastery `json:"mastery"`
}

type AttemptService interface {
	// SubmitAttempt appends the audit record and replaces the stored mastery
	// score with the fresh per-event score, in one transaction.
	SubmitAttempt(ctx context.Context, userID uuid.UUID, in SubmitAttemptInput) (*SubmitAttemptResult, error)

	// SyncOfflineAttempts replays a recorded offline queue. Malformed entries
	// are skipped, well-formed ones apply the incremental +5/-2 mastery delta;
	// the whole batch runs in one transaction so a storage failure leaves no
	// partial deltas. Replaying the same batch twice applies the deltas twice:
	// exactly-once delivery needs client-side dedup.
	SyncOfflineAttempts(ctx context.Context, userID uuid.UUID, entries []json.RawMessage) (int, error)
}

type attemptService struct {
	db          *gorm.DB
	log         *logger.Logger
	attemptRepo repos.AttemptRepo
	masteryRepo repos.MasteryRepo
}

func NewAttemptService(db *gorm.DB, log *logger.Logger, attemptRepo repos.AttemptRepo, masteryRepo repos.MasteryRepo) AttemptService {
	return &attemptService{
		db:          db,
		log:         log.With("service", "AttemptService"),
		attemptRepo: attemptRepo,
		masteryRepo: masteryRepo,
	}
}

func (s *attemptService) SubmitAttempt(ctx context.Context, userID uuid.UUID, in SubmitAttemptInput) (*SubmitAttemptResult, error) {
	if userID == uuid.Nil {
		return nil, apperr.InvalidArgument("missing_user", nil)
	}
	if in.TopicID == uuid.Nil {
		return nil, apperr.InvalidArgument("missing_topic", nil)
	}
	if in.Confidence != nil && (*in.Confidence < 0 || *in.Confidence > 1) {
		return nil, apperr.InvalidArgument("invalid_confidence", fmt.Errorf("confidence %v out of [0,1]", *in.Confidence))
	}

	attempt := &types.Attempt{
		ID:          uuid.New(),
		UserID:      userID,
		TopicID:     in.TopicID,
		QuestionID:  in.QuestionID,
		IsCorrect:   in.IsCorrect,
		SolvingTime: in.SolvingTime,
		Confidence:  in.Confidence,
		Source:      "online",
		Timestamp:   time.Now().UTC(),
	}
	freshScore := scoring.Score(in.IsCorrect, in.SolvingTime, in.Confidence)

	err := withConflictRetry(s.log, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.attemptRepo.Append(ctx, tx, attempt); err != nil {
				return fmt.Errorf("append attempt: %w", err)
			}
			prior, err := s.masteryRepo.Get(ctx, tx, userID, in.TopicID)
			if err != nil {
				return fmt.Errorf("load mastery: %w", err)
			}
			old := 0.0
			if prior != nil {
				old = prior.Score
			}
			return s.masteryRepo.Upsert(ctx, tx, userID, in.TopicID, scoring.ApplyOnline(old, freshScore))
		})
	})
	if err != nil {
		return nil, err
	}

	mastery, err := s.masteryRepo.Get(ctx, nil, userID, in.TopicID)
	if err != nil {
		return nil, fmt.Errorf("reload mastery: %w", err)
	}
	s.log.Debug("Attempt submitted", "user_id", userID, "topic_id", in.TopicID, "score", freshScore)
	return &SubmitAttemptResult{Attempt: attempt, Mastery: mastery}, nil
}

func (s *attemptService) SyncOfflineAttempts(ctx context.Context, userID uuid.UUID, entries []json.RawMessage) (int, error) {
	if userID == uuid.Nil {
		return 0, apperr.InvalidArgument("missing_user", nil)
	}

	synced := 0
	err := withConflictRetry(s.log, func() error {
		synced = 0
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for i, raw := range entries {
				payload, ok := decodeOfflineEntry(raw)
				if !ok {
					s.log.Debug("Skipping malformed offline entry", "user_id", userID, "index", i)
					continue
				}
				if err := s.applyOfflineEntry(ctx, tx, userID, raw, payload); err != nil {
					return err
				}
				synced++
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("Offline sync applied", "user_id", userID, "received", len(entries), "synced", synced)
	return synced, nil
}

func (s *attemptService) applyOfflineEntry(ctx context.Context, tx *gorm.DB, userID uuid.UUID, raw json.RawMessage, payload *OfflineAttemptPayload) error {
	isCorrect := payload.IsCorrect != nil && *payload.IsCorrect

	attempt := &types.Attempt{
		ID:          uuid.New(),
		UserID:      userID,
		TopicID:     *payload.TopicID,
		QuestionID:  payload.QuestionID,
		IsCorrect:   isCorrect,
		SolvingTime: payload.SolvingTime,
		Confidence:  payload.Confidence,
		Source:      "offline",
		Metadata:    datatypes.JSON(raw),
		Timestamp:   offlineTimestamp(payload.CreatedAt),
	}
	if err := s.attemptRepo.Append(ctx, tx, attempt); err != nil {
		return fmt.Errorf("append offline attempt: %w", err)
	}

	prior, err := s.masteryRepo.Get(ctx, tx, userID, *payload.TopicID)
	if err != nil {
		return fmt.Errorf("load mastery: %w", err)
	}
	old := scoring.OfflineBase
	if prior != nil {
		old = prior.Score
	}
	return s.masteryRepo.Upsert(ctx, tx, userID, *payload.TopicID, scoring.ApplyOffline(old, isCorrect))
}

func decodeOfflineEntry(raw json.RawMessage) (*OfflineAttemptPayload, bool) {
	var payload OfflineAttemptPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	if payload.TopicID == nil || *payload.TopicID == uuid.Nil {
		return nil, false
	}
	if payload.Confidence != nil && (*payload.Confidence < 0 || *payload.Confidence > 1) {
		return nil, false
	}
	return &payload, true
}

func offlineTimestamp(createdAt *string) time.Time {
	now := time.Now().UTC()
	if createdAt == nil {
		return now
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, *createdAt); err == nil {
			return ts.UTC()
		}
	}
	return now
}
