package exercise

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

var ErrNotFound = errors.New("exercise not found")

type Filter struct {
	Range daterange.Range
	Done  *bool
}

type Patch struct {
	Name     *string
	Category *string
	Duration *float64
	Done     *bool
	Date     *time.Time
}

type Store interface {
	Insert(ctx context.Context, e Exercise) (Exercise, error)
	List(ctx context.Context, userID string, f Filter) ([]Exercise, error)
	Get(ctx context.Context, userID, id string) (Exercise, error)
	Update(ctx context.Context, userID, id string, p Patch) (Exercise, error)
	Delete(ctx context.Context, userID, id string) error
	Toggle(ctx context.Context, userID, id string) (Exercise, error)
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const exerciseCols = "id, user_id, name, category, duration, done, date, created_at, updated_at"

func (r *Repository) Insert(ctx context.Context, e Exercise) (Exercise, error) {
	row := r.Pool.QueryRow(ctx, `
INSERT INTO exercises (user_id, name, category, duration, done, date)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+exerciseCols,
		e.UserID, e.Name, e.Category, e.Duration, e.Done, e.Date)
	return scanExercise(row)
}

func (r *Repository) List(ctx context.Context, userID string, f Filter) ([]Exercise, error) {
	q := `SELECT ` + exerciseCols + ` FROM exercises WHERE user_id = $1`
	args := []any{userID}

	if f.Range.HasStart {
		args = append(args, f.Range.Start)
		q += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if f.Range.HasEnd {
		args = append(args, f.Range.End)
		q += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if f.Done != nil {
		args = append(args, *f.Done)
		q += fmt.Sprintf(" AND done = $%d", len(args))
	}
	q += " ORDER BY date DESC, created_at DESC"

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Exercise, 0)
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id string) (Exercise, error) {
	row := r.Pool.QueryRow(ctx, `
SELECT `+exerciseCols+` FROM exercises WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	return scanExercise(row)
}

func (r *Repository) Update(ctx context.Context, userID, id string, p Patch) (Exercise, error) {
	sets := []string{"updated_at = now()"}
	args := []any{userID, id}

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		set("name", *p.Name)
	}
	if p.Category != nil {
		set("category", *p.Category)
	}
	if p.Duration != nil {
		set("duration", *p.Duration)
	}
	if p.Done != nil {
		set("done", *p.Done)
	}
	if p.Date != nil {
		set("date", *p.Date)
	}

	row := r.Pool.QueryRow(ctx, `
UPDATE exercises SET `+strings.Join(sets, ", ")+`
WHERE user_id = $1 AND id = $2::uuid
RETURNING `+exerciseCols, args...)
	return scanExercise(row)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(ctx, `
DELETE FROM exercises WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Toggle(ctx context.Context, userID, id string) (Exercise, error) {
	row := r.Pool.QueryRow(ctx, `
UPDATE exercises SET done = NOT done, updated_at = now()
WHERE user_id = $1 AND id = $2::uuid
RETURNING `+exerciseCols, userID, id)
	return scanExercise(row)
}

func scanExercise(row pgx.Row) (Exercise, error) {
	var e Exercise
	err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.Category, &e.Duration, &e.Done,
		&e.Date, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Exercise{}, ErrNotFound
	}
	if err != nil {
		return Exercise{}, err
	}
	return e, nil
}
