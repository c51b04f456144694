package repository

import (
	"context"

	"github.com/lifesync/lifesync/internal/domain/entity"
)

// UserListFilter narrows a tenant directory listing.
type UserListFilter struct {
	Role  entity.Role // empty means any role
	Page  int
	Limit int
}

// UserRepository defines persistence for the user directory.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmailAndTenant(ctx context.Context, email, tenantID string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	List(ctx context.Context, tenantID string, f UserListFilter) ([]*entity.User, int, error)
	Ranking(ctx context.Context, tenantID string, limit int) ([]*entity.User, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)

	// UpdateRefreshFingerprint overwrites the stored refresh-token fingerprint
	// unconditionally. An empty fingerprint revokes the session.
	UpdateRefreshFingerprint(ctx context.Context, userID, fingerprint string) error

	// RotateRefreshFingerprint replaces the stored fingerprint only while it
	// still equals prev. It returns false when another rotation won the race.
	RotateRefreshFingerprint(ctx context.Context, userID, prev, next string) (bool, error)

	// AddXP atomically adds amount to the user's XP and recomputes the level.
	AddXP(ctx context.Context, userID string, amount int) (xp int, level int, err error)
}
