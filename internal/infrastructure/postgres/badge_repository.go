package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifesync/lifesync/internal/domain/entity"
	"github.com/lifesync/lifesync/internal/domain/repository"
)

type BadgeRepository struct {
	pool *pgxpool.Pool
}

func NewBadgeRepository(pool *pgxpool.Pool) *BadgeRepository {
	return &BadgeRepository{pool: pool}
}

// Award relies on the (user_id, name) unique constraint: a duplicate insert
// reports "already held" instead of failing the caller.
func (r *BadgeRepository) Award(ctx context.Context, b *entity.Badge) (bool, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO badges (user_id, name, description, icon_url)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, awarded_at
	`, b.UserID, b.Name, b.Description, b.IconURL)
	if err := row.Scan(&b.ID, &b.AwardedAt); err != nil {
		if errors.Is(mapInsertErr(err), repository.ErrConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *BadgeRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Badge, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, description, COALESCE(icon_url, ''), awarded_at
		FROM badges
		WHERE user_id = $1
		ORDER BY awarded_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Badge
	for rows.Next() {
		b := &entity.Badge{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Description, &b.IconURL, &b.AwardedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

var _ repository.BadgeRepository = (*BadgeRepository)(nil)
