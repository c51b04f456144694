package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	repo "github.com/lifesync/lifesync/internal/domain/repository"
	"github.com/lifesync/lifesync/pkg/helpers"
)

const summaryCacheTTL = 5 * time.Minute

// AnalyticsService aggregates tenant-wide mood data for managers.
type AnalyticsService struct {
	MoodLogs repo.MoodLogRepository
	Users    repo.UserRepository
	Redis    *redis.Client // optional cache
	Logger   *logrus.Logger
}

func NewAnalyticsService(moodLogs repo.MoodLogRepository, users repo.UserRepository, rdb *redis.Client, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{MoodLogs: moodLogs, Users: users, Redis: rdb, Logger: logger}
}

// MoodSummary is the aggregate returned to managers.
type MoodSummary struct {
	AverageMood      float64         `json:"average_mood"`
	TotalCheckins    int             `json:"total_checkins"`
	MoodDistribution map[int]float64 `json:"mood_distribution"` // percent per mood 1..5
	EngagementRate   float64         `json:"engagement_rate"`   // percent of tenant users with a check-in
}

func summaryCacheKey(tenantID string, from, to time.Time) string {
	return fmt.Sprintf("analytics:mood:%s:%d:%d", tenantID, from.Unix(), to.Unix())
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// MoodSummary computes average mood, distribution and engagement for the
// tenant in the optional [from, to] range. Results are cached for 5 minutes.
func (s *AnalyticsService) MoodSummary(ctx context.Context, tenantID string, from, to time.Time) (*MoodSummary, error) {
	key := summaryCacheKey(tenantID, from, to)
	if s.Redis != nil {
		var cached MoodSummary
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	moods, err := s.MoodLogs.MoodsForTenant(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	out := &MoodSummary{MoodDistribution: map[int]float64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	if len(moods) > 0 {
		total := 0
		counts := map[int]int{}
		seen := map[string]bool{}
		for _, m := range moods {
			total += m.Mood
			counts[m.Mood]++
			seen[m.UserID] = true
		}
		out.TotalCheckins = len(moods)
		out.AverageMood = round2(float64(total) / float64(len(moods)))
		for mood := 1; mood <= 5; mood++ {
			out.MoodDistribution[mood] = round2(float64(counts[mood]) / float64(len(moods)) * 100)
		}

		totalUsers, err := s.Users.CountByTenant(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if totalUsers > 0 {
			out.EngagementRate = round2(float64(len(seen)) / float64(totalUsers) * 100)
		}
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, out, summaryCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("cache mood summary failed")
		}
	}
	if s.Logger != nil {
		s.Logger.WithField("tenant_id", tenantID).Debug("mood summary generated")
	}
	return out, nil
}
