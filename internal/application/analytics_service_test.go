package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifesync/lifesync/internal/domain/entity"
)

func TestMoodSummaryAggregation(t *testing.T) {
	users := newMemUsers()
	logs := newMemMoodLogs(users)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		u := &entity.User{TenantID: "t1", Email: string(rune('a'+i)) + "@acme.com", Level: 1}
		require.NoError(t, users.Create(ctx, u))
		ids = append(ids, u.ID)
	}
	outsider := &entity.User{TenantID: "t2", Email: "x@globex.com", Level: 1}
	require.NoError(t, users.Create(ctx, outsider))

	at := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	moods := []int{5, 4, 4, 3}
	for i, mood := range moods {
		require.NoError(t, logs.Create(ctx, &entity.MoodLog{UserID: ids[i%3], Mood: mood, LoggedAt: at.AddDate(0, 0, i)}))
	}
	// Another tenant's log must not leak into the summary.
	require.NoError(t, logs.Create(ctx, &entity.MoodLog{UserID: outsider.ID, Mood: 1, LoggedAt: at}))

	svc := NewAnalyticsService(logs, users, nil, nil)
	sum, err := svc.MoodSummary(ctx, "t1", time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 4, sum.TotalCheckins)
	assert.Equal(t, 4.0, sum.AverageMood)
	assert.Equal(t, 25.0, sum.MoodDistribution[5])
	assert.Equal(t, 50.0, sum.MoodDistribution[4])
	assert.Equal(t, 25.0, sum.MoodDistribution[3])
	assert.Equal(t, 0.0, sum.MoodDistribution[1])
	// 3 of 4 tenant users checked in.
	assert.Equal(t, 75.0, sum.EngagementRate)
}

func TestMoodSummaryHonorsDateRange(t *testing.T) {
	users := newMemUsers()
	logs := newMemMoodLogs(users)
	ctx := context.Background()

	u := &entity.User{TenantID: "t1", Email: "a@acme.com", Level: 1}
	require.NoError(t, users.Create(ctx, u))

	require.NoError(t, logs.Create(ctx, &entity.MoodLog{UserID: u.ID, Mood: 2, LoggedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)}))
	require.NoError(t, logs.Create(ctx, &entity.MoodLog{UserID: u.ID, Mood: 5, LoggedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}))

	svc := NewAnalyticsService(logs, users, nil, nil)
	sum, err := svc.MoodSummary(ctx, "t1", time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.TotalCheckins)
	assert.Equal(t, 5.0, sum.AverageMood)
}

func TestMoodSummaryEmptyTenant(t *testing.T) {
	users := newMemUsers()
	logs := newMemMoodLogs(users)

	svc := NewAnalyticsService(logs, users, nil, nil)
	sum, err := svc.MoodSummary(context.Background(), "t1", time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 0, sum.TotalCheckins)
	assert.Equal(t, 0.0, sum.AverageMood)
	assert.Equal(t, 0.0, sum.EngagementRate)
	assert.Equal(t, 0.0, sum.MoodDistribution[3])
}
