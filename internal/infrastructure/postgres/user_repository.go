package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifesync/lifesync/internal/domain/entity"
	"github.com/lifesync/lifesync/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, tenant_id, email, name, password_hash, role, xp, level,
	avatar_url, COALESCE(refresh_fingerprint, ''), created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.Name, &u.PasswordHash,
		&u.Role, &u.XP, &u.Level, &u.AvatarURL, &u.RefreshFingerprint,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (tenant_id, email, name, password_hash, role, xp, level, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, u.TenantID, u.Email, u.Name, u.PasswordHash, u.Role, u.XP, u.Level, u.AvatarURL)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapInsertErr(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmailAndTenant(ctx context.Context, email, tenantID string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1 AND tenant_id = $2
	`, email, tenantID))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, avatar_url = $2, updated_at = $3
		WHERE id = $4
	`, u.Name, u.AvatarURL, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, tenantID string, f repository.UserListFilter) ([]*entity.User, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	offset := (f.Page - 1) * f.Limit

	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE tenant_id = $1 AND ($2 = '' OR role = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, tenantID, string(f.Role), f.Limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = r.pool.QueryRow(ctx, `
		SELECT count(*) FROM users
		WHERE tenant_id = $1 AND ($2 = '' OR role = $2)
	`, tenantID, string(f.Role)).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) Ranking(ctx context.Context, tenantID string, limit int) ([]*entity.User, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE tenant_id = $1
		ORDER BY xp DESC, created_at ASC
		LIMIT $2
	`, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE tenant_id = $1`, tenantID).Scan(&n)
	return n, err
}

func (r *UserRepository) UpdateRefreshFingerprint(ctx context.Context, userID, fingerprint string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET refresh_fingerprint = NULLIF($1, ''), updated_at = now()
		WHERE id = $2
	`, fingerprint, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RotateRefreshFingerprint is the compare-and-swap half of refresh-token
// rotation: the fingerprint is replaced only while it still matches prev, so
// two concurrent refreshes with the same token cannot both succeed.
func (r *UserRepository) RotateRefreshFingerprint(ctx context.Context, userID, prev, next string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET refresh_fingerprint = NULLIF($1, ''), updated_at = now()
		WHERE id = $2 AND refresh_fingerprint = $3
	`, next, userID, prev)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *UserRepository) AddXP(ctx context.Context, userID string, amount int) (int, int, error) {
	var xp, level int
	err := r.pool.QueryRow(ctx, `
		UPDATE users
		SET xp = xp + $1, level = (xp + $1) / 100 + 1, updated_at = now()
		WHERE id = $2
		RETURNING xp, level
	`, amount, userID).Scan(&xp, &level)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, 0, err
	}
	return xp, level, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
