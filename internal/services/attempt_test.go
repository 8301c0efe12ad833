package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/conceptpulse/conceptpulse-backend/internal/apperr"
	"github.com/conceptpulse/conceptpulse-backend/internal/repos"
	"github.com/conceptpulse/conceptpulse-backend/internal/types"
)

func newAttemptFixture(t *testing.T) (AttemptService, repos.AttemptRepo, repos.MasteryRepo, *types.Topic) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	attemptRepo := repos.NewAttemptRepo(db, log)
	masteryRepo := repos.NewMasteryRepo(db, log)
	topic := createTestTopic(t, db, log, "Quadratic Equations")
	return NewAttemptService(db, log, attemptRepo, masteryRepo), attemptRepo, masteryRepo, topic
}

func TestSubmitAttemptReplacesMasteryScore(t *testing.T) {
	svc, attemptRepo, _, topic := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	// correct, confident, normal pace: 80 + (0.9-0.5)*20 = 88
	res, err := svc.SubmitAttempt(ctx, userID, SubmitAttemptInput{
		TopicID:     topic.ID,
		IsCorrect:   true,
		SolvingTime: intPtr(15),
		Confidence:  floatPtr(0.9),
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if res.Mastery == nil || res.Mastery.Score != 88 {
		t.Fatalf("mastery after first attempt: want=88 got=%+v", res.Mastery)
	}
	if res.Attempt.Source != "online" {
		t.Fatalf("attempt source: want=online got=%q", res.Attempt.Source)
	}

	// The stored score is replaced, not averaged: a later bad attempt wins.
	// incorrect, low confidence: 20 + (0.2-0.5)*20 = 14
	res, err = svc.SubmitAttempt(ctx, userID, SubmitAttemptInput{
		TopicID:    topic.ID,
		IsCorrect:  false,
		Confidence: floatPtr(0.2),
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if res.Mastery.Score != 14 {
		t.Fatalf("mastery after second attempt: want=14 got=%v", res.Mastery.Score)
	}

	count, err := attemptRepo.CountByUser(ctx, nil, userID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 2 {
		t.Fatalf("attempt count: want=2 got=%d", count)
	}
}

func TestSubmitAttemptRejectsBadInput(t *testing.T) {
	svc, _, _, topic := newAttemptFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitAttempt(ctx, uuid.New(), SubmitAttemptInput{})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("missing topic: want ErrInvalidArgument got %v", err)
	}

	_, err = svc.SubmitAttempt(ctx, uuid.New(), SubmitAttemptInput{
		TopicID:    topic.ID,
		Confidence: floatPtr(1.5),
	})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("out-of-range confidence: want ErrInvalidArgument got %v", err)
	}

	_, err = svc.SubmitAttempt(ctx, uuid.Nil, SubmitAttemptInput{TopicID: topic.ID})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("missing user: want ErrInvalidArgument got %v", err)
	}
}

func TestSyncOfflineSkipsMalformedEntries(t *testing.T) {
	svc, attemptRepo, masteryRepo, topic := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	entries := []json.RawMessage{
		json.RawMessage(fmt.Sprintf(`{"topicId":%q,"isCorrect":true}`, topic.ID)),
		json.RawMessage(`{"topicId": not-json`),
		json.RawMessage(`{"isCorrect":true}`),
		json.RawMessage(fmt.Sprintf(`{"topicId":%q,"confidence":2.0}`, topic.ID)),
	}
	synced, err := svc.SyncOfflineAttempts(ctx, userID, entries)
	if err != nil {
		t.Fatalf("SyncOfflineAttempts: %v", err)
	}
	if synced != 1 {
		t.Fatalf("synced: want=1 got=%d", synced)
	}

	count, err := attemptRepo.CountByUser(ctx, nil, userID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 1 {
		t.Fatalf("persisted attempts: want=1 got=%d", count)
	}

	// No prior mastery: start from the offline base of 50, then +5.
	mastery, err := masteryRepo.Get(ctx, nil, userID, topic.ID)
	if err != nil {
		t.Fatalf("Get mastery: %v", err)
	}
	if mastery == nil || mastery.Score != 55 {
		t.Fatalf("mastery after sync: want=55 got=%+v", mastery)
	}
}

func TestSyncOfflineAppliesDeltasToExistingMastery(t *testing.T) {
	svc, _, masteryRepo, topic := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := masteryRepo.Upsert(ctx, nil, userID, topic.ID, 90); err != nil {
		t.Fatalf("seed mastery: %v", err)
	}

	entries := []json.RawMessage{
		json.RawMessage(fmt.Sprintf(`{"topicId":%q,"isCorrect":true}`, topic.ID)),
		json.RawMessage(fmt.Sprintf(`{"topicId":%q,"isCorrect":false}`, topic.ID)),
	}
	synced, err := svc.SyncOfflineAttempts(ctx, userID, entries)
	if err != nil {
		t.Fatalf("SyncOfflineAttempts: %v", err)
	}
	if synced != 2 {
		t.Fatalf("synced: want=2 got=%d", synced)
	}

	mastery, err := masteryRepo.Get(ctx, nil, userID, topic.ID)
	if err != nil {
		t.Fatalf("Get mastery: %v", err)
	}
	// 90 +5 -2, deltas applied in order within one transaction.
	if mastery.Score != 93 {
		t.Fatalf("mastery after deltas: want=93 got=%v", mastery.Score)
	}
}

func TestSyncOfflineReplayIsNotIdempotent(t *testing.T) {
	svc, _, masteryRepo, topic := newAttemptFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	batch := []json.RawMessage{
		json.RawMessage(fmt.Sprintf(`{"topicId":%q,"isCorrect":true}`, topic.ID)),
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.SyncOfflineAttempts(ctx, userID, batch); err != nil {
			t.Fatalf("SyncOfflineAttempts replay %d: %v", i, err)
		}
	}

	mastery, err := masteryRepo.Get(ctx, nil, userID, topic.ID)
	if err != nil {
		t.Fatalf("Get mastery: %v", err)
	}
	// 50 +5, then +5 again: the server applies whatever the client sends.
	if mastery.Score != 60 {
		t.Fatalf("mastery after replay: want=60 got=%v", mastery.Score)
	}
}

func TestSyncOfflineKeepsRecordedTimestampAndPayload(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	attemptRepo := repos.NewAttemptRepo(db, log)
	masteryRepo := repos.NewMasteryRepo(db, log)
	topic := createTestTopic(t, db, log, "Thermodynamics")
	svc := NewAttemptService(db, log, attemptRepo, masteryRepo)

	ctx := context.Background()
	userID := uuid.New()
	recorded := "2026-08-20T10:30:00Z"
	raw := json.RawMessage(fmt.Sprintf(`{"topicId":%q,"isCorrect":true,"solvingTime":12,"createdAt":%q}`, topic.ID, recorded))

	if _, err := svc.SyncOfflineAttempts(ctx, userID, []json.RawMessage{raw}); err != nil {
		t.Fatalf("SyncOfflineAttempts: %v", err)
	}

	var row types.Attempt
	if err := db.Where("user_id = ?", userID).First(&row).Error; err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if row.Source != "offline" {
		t.Fatalf("source: want=offline got=%q", row.Source)
	}
	want, _ := time.Parse(time.RFC3339, recorded)
	if !row.Timestamp.Equal(want) {
		t.Fatalf("timestamp: want=%s got=%s", want, row.Timestamp)
	}
	var echo OfflineAttemptPayload
	if err := json.Unmarshal(row.Metadata, &echo); err != nil {
		t.Fatalf("metadata round-trip: %v", err)
	}
	if echo.SolvingTime == nil || *echo.SolvingTime != 12 {
		t.Fatalf("metadata solvingTime: want=12 got=%+v", echo.SolvingTime)
	}
}
