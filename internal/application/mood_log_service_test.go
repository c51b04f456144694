package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifesync/lifesync/internal/domain/entity"
	"github.com/lifesync/lifesync/internal/events"
)

func TestLogUpsertsWithinSameDay(t *testing.T) {
	logs := newMemMoodLogs(newMemUsers())
	svc := NewMoodLogService(logs, nil, nil)
	clock := newTestClock()
	svc.Now = clock.Now
	ctx := context.Background()

	first, err := svc.Log(ctx, "u1", 3, []string{"Tired"}, "long meeting")
	require.NoError(t, err)
	assert.Equal(t, 3, first.Mood)
	assert.Equal(t, []string{"tired"}, first.Tags)
	assert.Equal(t, entity.MoodLogXP, first.XPEarned)

	// Later the same day: update in place, same id.
	clock.Advance(6 * time.Hour)
	second, err := svc.Log(ctx, "u1", 5, []string{"happy"}, "went for a run")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Mood)

	count, err := logs.CountByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Next day: a new row.
	clock.Advance(24 * time.Hour)
	third, err := svc.Log(ctx, "u1", 4, nil, "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestLogPublishesMoodLoggedEvent(t *testing.T) {
	users := newMemUsers()
	logs := newMemMoodLogs(users)
	badges := newMemBadges()
	challenges := newMemChallenges()

	u := &entity.User{TenantID: "t1", Email: "joao@acme.com", Name: "João", Level: 1}
	require.NoError(t, users.Create(context.Background(), u))

	bus := events.NewBus()
	bus.Subscribe(NewGamificationService(users, badges, logs, challenges, nil))

	svc := NewMoodLogService(logs, bus, nil)
	svc.Now = newTestClock().Now

	_, err := svc.Log(context.Background(), u.ID, 4, nil, "")
	require.NoError(t, err)

	got := mustGetUser(t, users, u.ID)
	assert.Equal(t, entity.MoodLogXP, got.XP)
	assert.Contains(t, badges.names(u.ID), entity.BadgeFirstStep)
}

func TestHistoryPagination(t *testing.T) {
	logs := newMemMoodLogs(newMemUsers())
	svc := NewMoodLogService(logs, nil, nil)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		require.NoError(t, logs.Create(ctx, &entity.MoodLog{
			UserID:   "u1",
			Mood:     (i % 5) + 1,
			LoggedAt: base.AddDate(0, 0, i),
			Note:     fmt.Sprintf("day %d", i),
		}))
	}

	page, err := svc.History(ctx, "u1", 0, "")
	require.NoError(t, err)
	require.Len(t, page.Data, 7) // default page size
	assert.NotEmpty(t, page.NextCursor)
	assert.Equal(t, "day 9", page.Data[0].Note) // newest first

	page2, err := svc.History(ctx, "u1", 0, page.NextCursor)
	require.NoError(t, err)
	require.Len(t, page2.Data, 3)
	assert.Empty(t, page2.NextCursor)
	assert.Equal(t, "day 2", page2.Data[0].Note)
	assert.Equal(t, "day 0", page2.Data[2].Note)
}

func TestHistoryLimitIsClamped(t *testing.T) {
	logs := newMemMoodLogs(newMemUsers())
	svc := NewMoodLogService(logs, nil, nil)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		require.NoError(t, logs.Create(ctx, &entity.MoodLog{UserID: "u1", Mood: 3, LoggedAt: base.AddDate(0, 0, i)}))
	}

	page, err := svc.History(ctx, "u1", 100, "")
	require.NoError(t, err)
	assert.Len(t, page.Data, 30)
}

func TestHistoryMalformedCursorStartsOver(t *testing.T) {
	logs := newMemMoodLogs(newMemUsers())
	svc := NewMoodLogService(logs, nil, nil)
	ctx := context.Background()

	require.NoError(t, logs.Create(ctx, &entity.MoodLog{
		UserID:   "u1",
		Mood:     4,
		LoggedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Note:     "only entry",
	}))

	for _, cursor := range []string{"garbage", "bm90IGpzb24=", "!!!"} {
		page, err := svc.History(ctx, "u1", 0, cursor)
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "only entry", page.Data[0].Note)
	}
}
