package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/repos"
	"github.com/conceptpulse/conceptpulse-backend/internal/types"
)

const (
	weakScoreCeiling     = 60.0
	masteredScoreFloor   = 80.0
	upcomingWindowDays   = 7
	minutesPerAttempt    = 2
	unknownTopicName     = "Unknown"
	dashboardCachePrefix = "dashboard:stats:"
)

type WeakTopic struct {
	Topic string  `json:"topic"`
	Score float64 `json:"score"`
}

type UpcomingRevision struct {
	Topic   string    `json:"topic"`
	Date    string    `json:"date"`
	TopicID uuid.UUID `json:"topicId"`
}

type DashboardStats struct {
	WeakTopics        []WeakTopic        `json:"weakTopics"`
	MasteredTopics    []string           `json:"masteredTopics"`
	UpcomingRevisions []UpcomingRevision `json:"upcomingRevisions"`
	TotalStudyMinutes int                `json:"totalStudyMinutes"`
}

// ProgressService is the read side: it scans current mastery and schedule
// state and never mutates anything.
type ProgressService interface {
	GetDashboardStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error)
}

type progressService struct {
	log          *logger.Logger
	masteryRepo  repos.MasteryRepo
	scheduleRepo repos.ScheduleRepo
	attemptRepo  repos.AttemptRepo
	topicRepo    repos.TopicRepo
	cache        *goredis.Client
	cacheTTL     time.Duration
	now          func() time.Time
}

// NewProgressService wires the aggregator. cache may be nil; when present,
// stats are served from a short-TTL redis entry keyed per user.
func NewProgressService(
	log *logger.Logger,
	masteryRepo repos.MasteryRepo,
	scheduleRepo repos.ScheduleRepo,
	attemptRepo repos.AttemptRepo,
	topicRepo repos.TopicRepo,
	cache *goredis.Client,
	cacheTTL time.Duration,
) ProgressService {
	return &progressService{
		log:          log.With("service", "ProgressService"),
		masteryRepo:  masteryRepo,
		scheduleRepo: scheduleRepo,
		attemptRepo:  attemptRepo,
		topicRepo:    topicRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *progressService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	if cached := s.cacheGet(ctx, userID); cached != nil {
		return cached, nil
	}

	now := s.now()
	windowEnd := now.AddDate(0, 0, upcomingWindowDays)

	var (
		masteries    []*types.Mastery
		schedules    []*types.RevisionSchedule
		attemptCount int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		masteries, err = s.masteryRepo.ListByUser(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		schedules, err = s.scheduleRepo.ListDueBetween(gctx, nil, userID, now, windowEnd)
		return err
	})
	g.Go(func() error {
		var err error
		attemptCount, err = s.attemptRepo.CountByUser(gctx, nil, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	topicIDs := make([]uuid.UUID, 0, len(masteries)+len(schedules))
	for _, m := range masteries {
		topicIDs = append(topicIDs, m.TopicID)
	}
	for _, sch := range schedules {
		topicIDs = append(topicIDs, sch.TopicID)
	}
	names, err := s.topicRepo.GetNames(ctx, nil, topicIDs)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		WeakTopics:        []WeakTopic{},
		MasteredTopics:    []string{},
		UpcomingRevisions: []UpcomingRevision{},
		TotalStudyMinutes: int(attemptCount) * minutesPerAttempt,
	}
	for _, m := range masteries {
		name := topicName(names, m.TopicID)
		if m.Score < weakScoreCeiling {
			stats.WeakTopics = append(stats.WeakTopics, WeakTopic{Topic: name, Score: m.Score})
		}
		if m.Score >= masteredScoreFloor {
			stats.MasteredTopics = append(stats.MasteredTopics, name)
		}
	}
	for _, sch := range schedules {
		stats.UpcomingRevisions = append(stats.UpcomingRevisions, UpcomingRevision{
			Topic:   topicName(names, sch.TopicID),
			Date:    sch.ScheduledDate.UTC().Format(time.RFC3339),
			TopicID: sch.TopicID,
		})
	}

	s.cacheSet(ctx, userID, stats)
	return stats, nil
}

func topicName(names map[uuid.UUID]string, topicID uuid.UUID) string {
	if name, ok := names[topicID]; ok && name != "" {
		return name
	}
	return unknownTopicName
}

func (s *progressService) cacheGet(ctx context.Context, userID uuid.UUID) *DashboardStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCachePrefix+userID.String()).Bytes()
	if err != nil {
		return nil
	}
	var stats DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *progressService) cacheSet(ctx context.Context, userID uuid.UUID, stats *DashboardStats) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCachePrefix+userID.String(), raw, s.cacheTTL).Err(); err != nil {
		s.log.Debug("Dashboard cache write failed", "user_id", userID, "error", err)
	}
}
