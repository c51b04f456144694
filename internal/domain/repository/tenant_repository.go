package repository

import (
	"context"
	"errors"

	"github.com/lifesync/lifesync/internal/domain/entity"
)

// ErrNotFound is returned by repositories when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert violates a uniqueness constraint.
var ErrConflict = errors.New("already exists")

// TenantRepository resolves and persists tenants. Tenants are created by the
// seeder only; the API never writes them.
type TenantRepository interface {
	GetByDomain(ctx context.Context, domain string) (*entity.Tenant, error)
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	Create(ctx context.Context, t *entity.Tenant) error
}
