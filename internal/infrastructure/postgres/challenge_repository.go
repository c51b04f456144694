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

type ChallengeRepository struct {
	pool *pgxpool.Pool
}

func NewChallengeRepository(pool *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{pool: pool}
}

func (r *ChallengeRepository) Create(ctx context.Context, c *entity.Challenge) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO challenges (tenant_id, title, description, category, xp_reward, is_global)
		VALUES (NULLIF($1, ''), $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, c.TenantID, c.Title, c.Description, c.Category, c.XPReward, c.IsGlobal)
	return row.Scan(&c.ID, &c.CreatedAt)
}

func (r *ChallengeRepository) GetByID(ctx context.Context, id string) (*entity.Challenge, error) {
	c := &entity.Challenge{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, COALESCE(tenant_id::text, ''), title, description, category, xp_reward, is_global, created_at
		FROM challenges
		WHERE id = $1
	`, id)
	if err := row.Scan(&c.ID, &c.TenantID, &c.Title, &c.Description, &c.Category, &c.XPReward, &c.IsGlobal, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *ChallengeRepository) ListForTenant(ctx context.Context, tenantID string) ([]*entity.Challenge, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, COALESCE(tenant_id::text, ''), title, description, category, xp_reward, is_global, created_at
		FROM challenges
		WHERE is_global OR tenant_id = $1
		ORDER BY category ASC, xp_reward DESC
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Challenge
	for rows.Next() {
		c := &entity.Challenge{}
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Title, &c.Description, &c.Category, &c.XPReward, &c.IsGlobal, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func (r *ChallengeRepository) CompletedOn(ctx context.Context, userID string, day time.Time) ([]string, error) {
	start, end := dayBounds(day)
	rows, err := r.pool.Query(ctx, `
		SELECT challenge_id
		FROM user_challenges
		WHERE user_id = $1 AND completed_at >= $2 AND completed_at < $3
	`, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ChallengeRepository) HasCompletedOn(ctx context.Context, userID, challengeID string, day time.Time) (bool, error) {
	start, end := dayBounds(day)
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_challenges
			WHERE user_id = $1 AND challenge_id = $2
			  AND completed_at >= $3 AND completed_at < $4
		)
	`, userID, challengeID, start, end).Scan(&exists)
	return exists, err
}

func (r *ChallengeRepository) RecordCompletion(ctx context.Context, c *entity.ChallengeCompletion) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_challenges (user_id, challenge_id, completed_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.UserID, c.ChallengeID, c.CompletedAt)
	if err := row.Scan(&c.ID); err != nil {
		return mapInsertErr(err)
	}
	return nil
}

func (r *ChallengeRepository) CountCompletions(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM user_challenges WHERE user_id = $1
	`, userID).Scan(&n)
	return n, err
}

var _ repository.ChallengeRepository = (*ChallengeRepository)(nil)
