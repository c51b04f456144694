package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifesync/lifesync/internal/domain/entity"
	"github.com/lifesync/lifesync/internal/events"
)

func newGamification(t *testing.T) (*GamificationService, *memUsers, *memBadges, *memChallenges, *memMoodLogs, *entity.User) {
	t.Helper()
	users := newMemUsers()
	badges := newMemBadges()
	challenges := newMemChallenges()
	logs := newMemMoodLogs(users)

	u := &entity.User{TenantID: "t1", Email: "joao@acme.com", Name: "João", Level: 1}
	require.NoError(t, users.Create(context.Background(), u))

	svc := NewGamificationService(users, badges, logs, challenges, nil)
	return svc, users, badges, challenges, logs, u
}

func TestFirstMoodLogAwardsBadge(t *testing.T) {
	svc, users, badges, _, logs, u := newGamification(t)
	ctx := context.Background()

	require.NoError(t, logs.Create(ctx, &entity.MoodLog{UserID: u.ID, Mood: 4}))
	svc.OnMoodLogged(ctx, events.MoodLogged{UserID: u.ID, XP: entity.MoodLogXP})

	assert.Contains(t, badges.names(u.ID), entity.BadgeFirstStep)
	assert.Equal(t, entity.MoodLogXP, mustGetUser(t, users, u.ID).XP)

	// The second log gains XP but no second badge.
	require.NoError(t, logs.Create(ctx, &entity.MoodLog{UserID: u.ID, Mood: 5}))
	svc.OnMoodLogged(ctx, events.MoodLogged{UserID: u.ID, XP: entity.MoodLogXP})

	assert.Len(t, badges.names(u.ID), 1)
	assert.Equal(t, 2*entity.MoodLogXP, mustGetUser(t, users, u.ID).XP)
}

func TestWellnessMasterBadge(t *testing.T) {
	svc, _, badges, challenges, _, u := newGamification(t)
	ctx := context.Background()

	c := &entity.Challenge{Title: "Pausa", Category: entity.CategoryPhysical, XPReward: 5, IsGlobal: true}
	require.NoError(t, challenges.Create(ctx, c))

	for i := 0; i < entity.WellnessMasterMinimum-1; i++ {
		require.NoError(t, challenges.RecordCompletion(ctx, &entity.ChallengeCompletion{UserID: u.ID, ChallengeID: c.ID}))
	}
	svc.OnChallengeCompleted(ctx, events.ChallengeCompleted{UserID: u.ID, ChallengeID: c.ID, XP: 5})
	assert.NotContains(t, badges.names(u.ID), entity.BadgeWellnessMaster)

	require.NoError(t, challenges.RecordCompletion(ctx, &entity.ChallengeCompletion{UserID: u.ID, ChallengeID: c.ID}))
	svc.OnChallengeCompleted(ctx, events.ChallengeCompleted{UserID: u.ID, ChallengeID: c.ID, XP: 5})
	assert.Contains(t, badges.names(u.ID), entity.BadgeWellnessMaster)
}

func TestLevelProgression(t *testing.T) {
	_, users, _, _, _, u := newGamification(t)
	ctx := context.Background()

	xp, level, err := users.AddXP(ctx, u.ID, 95)
	require.NoError(t, err)
	assert.Equal(t, 95, xp)
	assert.Equal(t, 1, level)

	xp, level, err = users.AddXP(ctx, u.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 100, xp)
	assert.Equal(t, 2, level)

	assert.Equal(t, 1, entity.LevelForXP(0))
	assert.Equal(t, 1, entity.LevelForXP(99))
	assert.Equal(t, 2, entity.LevelForXP(100))
	assert.Equal(t, 6, entity.LevelForXP(500))
}

func TestListenerErrorsDoNotPanic(t *testing.T) {
	svc, _, _, _, _, _ := newGamification(t)

	// Unknown user: AddXP and counts fail, listener swallows it.
	assert.NotPanics(t, func() {
		svc.OnMoodLogged(context.Background(), events.MoodLogged{UserID: "ghost", XP: 5})
	})
	assert.NotPanics(t, func() {
		svc.OnChallengeCompleted(context.Background(), events.ChallengeCompleted{UserID: "ghost", XP: 5})
	})
}
