package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifesync/lifesync/internal/domain/entity"
	"github.com/lifesync/lifesync/internal/domain/repository"
)

type TenantRepository struct {
	pool *pgxpool.Pool
}

func NewTenantRepository(pool *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

func (r *TenantRepository) GetByDomain(ctx context.Context, domain string) (*entity.Tenant, error) {
	t := &entity.Tenant{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, domain, name, created_at
		FROM tenants
		WHERE domain = $1
	`, domain)
	if err := row.Scan(&t.ID, &t.Domain, &t.Name, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	t := &entity.Tenant{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, domain, name, created_at
		FROM tenants
		WHERE id = $1
	`, id)
	if err := row.Scan(&t.ID, &t.Domain, &t.Name, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TenantRepository) Create(ctx context.Context, t *entity.Tenant) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tenants (domain, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, t.Domain, t.Name)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return mapInsertErr(err)
	}
	return nil
}

var _ repository.TenantRepository = (*TenantRepository)(nil)
