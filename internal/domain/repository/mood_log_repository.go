package repository

import (
	"context"
	"time"

	"github.com/lifesync/lifesync/internal/domain/entity"
)

// MoodLogRepository defines persistence for daily mood check-ins.
type MoodLogRepository interface {
	Create(ctx context.Context, m *entity.MoodLog) error
	Update(ctx context.Context, m *entity.MoodLog) error

	// FindByUserAndDay returns the log whose LoggedAt falls on the given UTC
	// calendar day, or ErrNotFound.
	FindByUserAndDay(ctx context.Context, userID string, day time.Time) (*entity.MoodLog, error)

	// History pages backwards through a user's logs with keyset pagination on
	// (logged_at desc, id desc). A zero cursorTime means start from the newest.
	History(ctx context.Context, userID string, limit int, cursorTime time.Time, cursorID string) ([]*entity.MoodLog, error)

	CountByUser(ctx context.Context, userID string) (int, error)

	// MoodsForTenant returns (mood, userID) pairs for every log of the tenant's
	// users in the optional [from, to] range. Zero times disable the bound.
	MoodsForTenant(ctx context.Context, tenantID string, from, to time.Time) ([]TenantMood, error)
}

// TenantMood is one mood sample used by analytics aggregation.
type TenantMood struct {
	Mood   int
	UserID string
}
