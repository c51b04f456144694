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

type MoodLogRepository struct {
	pool *pgxpool.Pool
}

func NewMoodLogRepository(pool *pgxpool.Pool) *MoodLogRepository {
	return &MoodLogRepository{pool: pool}
}

func (r *MoodLogRepository) Create(ctx context.Context, m *entity.MoodLog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO mood_logs (user_id, mood, tags, note, logged_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, m.UserID, m.Mood, m.Tags, m.Note, m.LoggedAt)
	return row.Scan(&m.ID, &m.CreatedAt)
}

func (r *MoodLogRepository) Update(ctx context.Context, m *entity.MoodLog) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE mood_logs
		SET mood = $1, tags = $2, note = $3
		WHERE id = $4
	`, m.Mood, m.Tags, m.Note, m.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MoodLogRepository) FindByUserAndDay(ctx context.Context, userID string, day time.Time) (*entity.MoodLog, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	m := &entity.MoodLog{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, mood, tags, note, logged_at, created_at
		FROM mood_logs
		WHERE user_id = $1 AND logged_at >= $2 AND logged_at < $3
		ORDER BY logged_at DESC
		LIMIT 1
	`, userID, start, end)
	if err := row.Scan(&m.ID, &m.UserID, &m.Mood, &m.Tags, &m.Note, &m.LoggedAt, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// History uses keyset pagination on (logged_at, id) so pages stay stable while
// new logs arrive.
func (r *MoodLogRepository) History(ctx context.Context, userID string, limit int, cursorTime time.Time, cursorID string) ([]*entity.MoodLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, mood, tags, note, logged_at, created_at
		FROM mood_logs
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL
		       OR logged_at < $2
		       OR (logged_at = $2 AND id < $3::uuid))
		ORDER BY logged_at DESC, id DESC
		LIMIT $4
	`, userID, nullableTime(cursorTime), nullableText(cursorID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*entity.MoodLog
	for rows.Next() {
		m := &entity.MoodLog{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Mood, &m.Tags, &m.Note, &m.LoggedAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, m)
	}
	return logs, rows.Err()
}

func (r *MoodLogRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM mood_logs WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *MoodLogRepository) MoodsForTenant(ctx context.Context, tenantID string, from, to time.Time) ([]repository.TenantMood, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.mood, m.user_id
		FROM mood_logs m
		JOIN users u ON u.id = m.user_id
		WHERE u.tenant_id = $1
		  AND ($2::timestamptz IS NULL OR m.logged_at >= $2)
		  AND ($3::timestamptz IS NULL OR m.logged_at <= $3)
	`, tenantID, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.TenantMood
	for rows.Next() {
		var tm repository.TenantMood
		if err := rows.Scan(&tm.Mood, &tm.UserID); err != nil {
			return nil, err
		}
		out = append(out, tm)
	}
	return out, rows.Err()
}

// nullableTime maps the zero time to SQL NULL for optional bounds.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// nullableText maps the empty string to SQL NULL so uuid-typed parameters
// never see an unparseable value.
func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ repository.MoodLogRepository = (*MoodLogRepository)(nil)
