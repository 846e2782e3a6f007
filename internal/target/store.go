package target

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

var ErrNotFound = errors.New("target not found")

type Filter struct {
	Range daterange.Range
}

type Patch struct {
	Title      *string
	Priority   *string
	Notes      *string
	TargetDate *time.Time
	IsAchieved *bool
}

type Store interface {
	Insert(ctx context.Context, t Target) (Target, error)
	List(ctx context.Context, userID string, f Filter) ([]Target, error)
	Get(ctx context.Context, userID, id string) (Target, error)
	Update(ctx context.Context, userID, id string, p Patch) (Target, error)
	Delete(ctx context.Context, userID, id string) error
	Achieve(ctx context.Context, userID, id string) (Target, error)
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const targetCols = "id, user_id, title, priority, notes, target_date, is_achieved, achieved_at, created_at, updated_at"

func (r *Repository) Insert(ctx context.Context, t Target) (Target, error) {
	row := r.Pool.QueryRow(ctx, `
INSERT INTO targets (user_id, title, priority, notes, target_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+targetCols,
		t.UserID, t.Title, t.Priority, t.Notes, t.TargetDate)
	return scanTarget(row)
}

func (r *Repository) List(ctx context.Context, userID string, f Filter) ([]Target, error) {
	q := `SELECT ` + targetCols + ` FROM targets WHERE user_id = $1`
	args := []any{userID}

	if f.Range.HasStart {
		args = append(args, f.Range.Start)
		q += fmt.Sprintf(" AND target_date >= $%d", len(args))
	}
	if f.Range.HasEnd {
		args = append(args, f.Range.End)
		q += fmt.Sprintf(" AND target_date <= $%d", len(args))
	}
	// Highest priority first, then oldest-created first.
	q += ` ORDER BY CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC, created_at ASC`

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Target, 0)
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id string) (Target, error) {
	row := r.Pool.QueryRow(ctx, `
SELECT `+targetCols+` FROM targets WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	return scanTarget(row)
}

func (r *Repository) Update(ctx context.Context, userID, id string, p Patch) (Target, error) {
	sets := []string{"updated_at = now()"}
	args := []any{userID, id}

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Priority != nil {
		set("priority", *p.Priority)
	}
	if p.Notes != nil {
		set("notes", *p.Notes)
	}
	if p.TargetDate != nil {
		set("target_date", *p.TargetDate)
	}
	if p.IsAchieved != nil {
		set("is_achieved", *p.IsAchieved)
	}

	row := r.Pool.QueryRow(ctx, `
UPDATE targets SET `+strings.Join(sets, ", ")+`
WHERE user_id = $1 AND id = $2::uuid
RETURNING `+targetCols, args...)
	return scanTarget(row)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(ctx, `
DELETE FROM targets WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Achieve marks the target done and stamps the achievement time. Calling it
// again simply re-stamps.
func (r *Repository) Achieve(ctx context.Context, userID, id string) (Target, error) {
	row := r.Pool.QueryRow(ctx, `
UPDATE targets SET is_achieved = true, achieved_at = now(), updated_at = now()
WHERE user_id = $1 AND id = $2::uuid
RETURNING `+targetCols, userID, id)
	return scanTarget(row)
}

func scanTarget(row pgx.Row) (Target, error) {
	var t Target
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Priority, &t.Notes, &t.TargetDate,
		&t.IsAchieved, &t.AchievedAt, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Target{}, ErrNotFound
	}
	if err != nil {
		return Target{}, err
	}
	return t, nil
}
