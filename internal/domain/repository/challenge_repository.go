package repository

import (
	"context"
	"time"

	"github.com/lifesync/lifesync/internal/domain/entity"
)

// ChallengeRepository defines persistence for challenges and completions.
type ChallengeRepository interface {
	Create(ctx context.Context, c *entity.Challenge) error
	GetByID(ctx context.Context, id string) (*entity.Challenge, error)

	// ListForTenant returns global challenges plus the tenant's own, ordered by
	// category asc then xp_reward desc.
	ListForTenant(ctx context.Context, tenantID string) ([]*entity.Challenge, error)

	// CompletedOn returns the ids of challenges the user completed on the given
	// UTC calendar day.
	CompletedOn(ctx context.Context, userID string, day time.Time) ([]string, error)

	// HasCompletedOn reports whether the user already completed the challenge
	// on the given UTC calendar day.
	HasCompletedOn(ctx context.Context, userID, challengeID string, day time.Time) (bool, error)

	RecordCompletion(ctx context.Context, c *entity.ChallengeCompletion) error
	CountCompletions(ctx context.Context, userID string) (int, error)
}

// BadgeRepository defines persistence for awarded badges.
type BadgeRepository interface {
	// Award inserts the badge unless the user already holds one with the same
	// name; it returns false when the badge was already held.
	Award(ctx context.Context, b *entity.Badge) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Badge, error)
}
