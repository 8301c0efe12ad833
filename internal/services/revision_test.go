package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/conceptpulse/conceptpulse-backend/internal/apperr"
	"github.com/conceptpulse/conceptpulse-backend/internal/repos"
	"github.com/conceptpulse/conceptpulse-backend/internal/types"
)

func newRevisionFixture(t *testing.T, now time.Time) (RevisionService, *types.Topic) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	topic := createTestTopic(t, db, log, "Organic Chemistry")
	svc := NewRevisionService(db, log, repos.NewTopicRepo(db, log), repos.NewScheduleRepo(db, log))
	svc.(*revisionService).now = func() time.Time { return now }
	return svc, topic
}

func TestScheduleInitialReview(t *testing.T) {
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	svc, topic := newRevisionFixture(t, now)
	ctx := context.Background()
	userID := uuid.New()

	schedule, err := svc.ScheduleInitialReview(ctx, userID, topic.ID)
	if err != nil {
		t.Fatalf("ScheduleInitialReview: %v", err)
	}
	if schedule.EaseFactor != 2.5 {
		t.Fatalf("ease: want=2.5 got=%v", schedule.EaseFactor)
	}
	if schedule.Interval != 1 || schedule.Repetitions != 1 {
		t.Fatalf("interval/reps: want=1/1 got=%d/%d", schedule.Interval, schedule.Repetitions)
	}
	if want := now.AddDate(0, 0, 1); !schedule.ScheduledDate.Equal(want) {
		t.Fatalf("scheduled date: want=%s got=%s", want, schedule.ScheduledDate)
	}
}

func TestScheduleInitialReviewUnknownTopic(t *testing.T) {
	svc, _ := newRevisionFixture(t, time.Now().UTC())

	_, err := svc.ScheduleInitialReview(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown topic: want ErrNotFound got %v", err)
	}
}

func TestScheduleInitialReviewOnlyOnce(t *testing.T) {
	svc, topic := newRevisionFixture(t, time.Now().UTC())
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.ScheduleInitialReview(ctx, userID, topic.ID); err != nil {
		t.Fatalf("first schedule: %v", err)
	}
	_, err := svc.ScheduleInitialReview(ctx, userID, topic.ID)
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("second schedule: want ErrAlreadyExists got %v", err)
	}

	// A different user scheduling the same topic is fine.
	if _, err := svc.ScheduleInitialReview(ctx, uuid.New(), topic.ID); err != nil {
		t.Fatalf("other user schedule: %v", err)
	}
}

func TestLogReviewRequiresSchedule(t *testing.T) {
	svc, topic := newRevisionFixture(t, time.Now().UTC())

	_, err := svc.LogReview(context.Background(), uuid.New(), topic.ID, 4)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing schedule: want ErrNotFound got %v", err)
	}
}

func TestLogReviewRejectsOutOfRangeQuality(t *testing.T) {
	svc, topic := newRevisionFixture(t, time.Now().UTC())
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.ScheduleInitialReview(ctx, userID, topic.ID); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	for _, quality := range []int{-1, 6} {
		if _, err := svc.LogReview(ctx, userID, topic.ID, quality); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("quality %d: want ErrInvalidArgument got %v", quality, err)
		}
	}
}

func TestLogReviewGrowsIntervalLadder(t *testing.T) {
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	svc, topic := newRevisionFixture(t, now)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.ScheduleInitialReview(ctx, userID, topic.ID); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	// Pre-increment reps is 1, so a perfect recall jumps to the 6-day rung.
	schedule, err := svc.LogReview(ctx, userID, topic.ID, 5)
	if err != nil {
		t.Fatalf("LogReview(5): %v", err)
	}
	if schedule.Interval != 6 || schedule.Repetitions != 2 {
		t.Fatalf("after q=5: want interval=6 reps=2 got=%d/%d", schedule.Interval, schedule.Repetitions)
	}
	if got, want := schedule.EaseFactor, 2.6; got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("after q=5: want ease=2.6 got=%v", got)
	}
	if want := now.AddDate(0, 0, 6); !schedule.ScheduledDate.Equal(want) {
		t.Fatalf("after q=5: want date=%s got=%s", want, schedule.ScheduledDate)
	}

	// q=4 leaves ease at 2.6; interval becomes round(6*2.6)=16.
	schedule, err = svc.LogReview(ctx, userID, topic.ID, 4)
	if err != nil {
		t.Fatalf("LogReview(4): %v", err)
	}
	if schedule.Interval != 16 || schedule.Repetitions != 3 {
		t.Fatalf("after q=4: want interval=16 reps=3 got=%d/%d", schedule.Interval, schedule.Repetitions)
	}
	if want := now.AddDate(0, 0, 16); !schedule.ScheduledDate.Equal(want) {
		t.Fatalf("after q=4: want date=%s got=%s", want, schedule.ScheduledDate)
	}
}

func TestLogReviewLapseResetsWithoutTouchingEase(t *testing.T) {
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	svc, topic := newRevisionFixture(t, now)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.ScheduleInitialReview(ctx, userID, topic.ID); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if _, err := svc.LogReview(ctx, userID, topic.ID, 5); err != nil {
		t.Fatalf("LogReview(5): %v", err)
	}

	schedule, err := svc.LogReview(ctx, userID, topic.ID, 1)
	if err != nil {
		t.Fatalf("LogReview(1): %v", err)
	}
	if schedule.Repetitions != 0 || schedule.Interval != 1 {
		t.Fatalf("after lapse: want interval=1 reps=0 got=%d/%d", schedule.Interval, schedule.Repetitions)
	}
	if got, want := schedule.EaseFactor, 2.6; got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("after lapse: ease must stay 2.6, got=%v", got)
	}
	if want := now.AddDate(0, 0, 1); !schedule.ScheduledDate.Equal(want) {
		t.Fatalf("after lapse: want date=%s got=%s", want, schedule.ScheduledDate)
	}
}

func TestListDueAndWindow(t *testing.T) {
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	svc, topic := newRevisionFixture(t, now)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.ScheduleInitialReview(ctx, userID, topic.ID); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	due, err := svc.ListDue(ctx, userID, now)
	if err != nil {
		t.Fatalf("ListDue: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("nothing is due yet, got %d rows", len(due))
	}

	due, err = svc.ListDue(ctx, userID, now.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("ListDue: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("due after one day: want=1 got=%d", len(due))
	}

	window, err := svc.ListWindow(ctx, userID, now, now.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("ListWindow: %v", err)
	}
	if len(window) != 1 {
		t.Fatalf("window rows: want=1 got=%d", len(window))
	}
}
