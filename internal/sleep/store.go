package sleep

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunsachdeva/lifetrack-backend/internal/daterange"
)

var ErrNotFound = errors.New("sleep log not found")

type Filter struct {
	Range daterange.Range
}

type Patch struct {
	Day      *time.Time
	Duration *float64
	Quality  *string
	Notes    *string
}

type Store interface {
	Insert(ctx context.Context, l Log) (Log, error)
	List(ctx context.Context, userID string, f Filter) ([]Log, error)
	Get(ctx context.Context, userID, id string) (Log, error)
	Update(ctx context.Context, userID, id string, p Patch) (Log, error)
	Delete(ctx context.Context, userID, id string) error
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const logCols = "id, user_id, day, duration, quality, notes, created_at, updated_at"

func (r *Repository) Insert(ctx context.Context, l Log) (Log, error) {
	row := r.Pool.QueryRow(ctx, `
INSERT INTO sleep_logs (user_id, day, duration, quality, notes)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+logCols,
		l.UserID, l.Day, l.Duration, l.Quality, l.Notes)
	return scanLog(row)
}

func (r *Repository) List(ctx context.Context, userID string, f Filter) ([]Log, error) {
	q := `SELECT ` + logCols + ` FROM sleep_logs WHERE user_id = $1`
	args := []any{userID}

	if f.Range.HasStart {
		args = append(args, f.Range.Start)
		q += fmt.Sprintf(" AND day >= $%d", len(args))
	}
	if f.Range.HasEnd {
		args = append(args, f.Range.End)
		q += fmt.Sprintf(" AND day <= $%d", len(args))
	}
	q += " ORDER BY day DESC, created_at DESC"

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Log, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id string) (Log, error) {
	row := r.Pool.QueryRow(ctx, `
SELECT `+logCols+` FROM sleep_logs WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	return scanLog(row)
}

func (r *Repository) Update(ctx context.Context, userID, id string, p Patch) (Log, error) {
	sets := []string{"updated_at = now()"}
	args := []any{userID, id}

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Day != nil {
		set("day", *p.Day)
	}
	if p.Duration != nil {
		set("duration", *p.Duration)
	}
	if p.Quality != nil {
		set("quality", *p.Quality)
	}
	if p.Notes != nil {
		set("notes", *p.Notes)
	}

	row := r.Pool.QueryRow(ctx, `
UPDATE sleep_logs SET `+strings.Join(sets, ", ")+`
WHERE user_id = $1 AND id = $2::uuid
RETURNING `+logCols, args...)
	return scanLog(row)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(ctx, `
DELETE FROM sleep_logs WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLog(row pgx.Row) (Log, error) {
	var l Log
	err := row.Scan(&l.ID, &l.UserID, &l.Day, &l.Duration, &l.Quality, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Log{}, ErrNotFound
	}
	if err != nil {
		return Log{}, err
	}
	return l, nil
}
