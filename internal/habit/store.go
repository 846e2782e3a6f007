package habit

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

var ErrNotFound = errors.New("habit not found")

type Filter struct {
	Range daterange.Range
	Done  *bool
}

type Patch struct {
	Name      *string
	Frequency *string
	Done      *bool
	Notes     *string
	Date      *time.Time
}

type Store interface {
	Insert(ctx context.Context, h Habit) (Habit, error)
	List(ctx context.Context, userID string, f Filter) ([]Habit, error)
	Get(ctx context.Context, userID, id string) (Habit, error)
	Update(ctx context.Context, userID, id string, p Patch) (Habit, error)
	Delete(ctx context.Context, userID, id string) error
	Toggle(ctx context.Context, userID, id string) (Habit, error)
	Complete(ctx context.Context, userID, id string, day time.Time) (Habit, error)
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const habitCols = "id, user_id, name, frequency, done, notes, date, completions, created_at, updated_at"

func (r *Repository) Insert(ctx context.Context, h Habit) (Habit, error) {
	row := r.Pool.QueryRow(ctx, `
INSERT INTO habits (user_id, name, frequency, done, notes, date)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+habitCols,
		h.UserID, h.Name, h.Frequency, h.Done, h.Notes, h.Date)
	return scanHabit(row)
}

func (r *Repository) List(ctx context.Context, userID string, f Filter) ([]Habit, error) {
	q := `SELECT ` + habitCols + ` FROM habits WHERE user_id = $1`
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

	out := make([]Habit, 0)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id string) (Habit, error) {
	row := r.Pool.QueryRow(ctx, `
SELECT `+habitCols+` FROM habits WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	return scanHabit(row)
}

func (r *Repository) Update(ctx context.Context, userID, id string, p Patch) (Habit, error) {
	sets := []string{"updated_at = now()"}
	args := []any{userID, id}

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		set("name", *p.Name)
	}
	if p.Frequency != nil {
		set("frequency", *p.Frequency)
	}
	if p.Done != nil {
		set("done", *p.Done)
	}
	if p.Notes != nil {
		set("notes", *p.Notes)
	}
	if p.Date != nil {
		set("date", *p.Date)
	}

	row := r.Pool.QueryRow(ctx, `
UPDATE habits SET `+strings.Join(sets, ", ")+`
WHERE user_id = $1 AND id = $2::uuid
RETURNING `+habitCols, args...)
	return scanHabit(row)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(ctx, `
DELETE FROM habits WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Toggle(ctx context.Context, userID, id string) (Habit, error) {
	row := r.Pool.QueryRow(ctx, `
UPDATE habits SET done = NOT done, updated_at = now()
WHERE user_id = $1 AND id = $2::uuid
RETURNING `+habitCols, userID, id)
	return scanHabit(row)
}

func (r *Repository) Complete(ctx context.Context, userID, id string, day time.Time) (Habit, error) {
	row := r.Pool.QueryRow(ctx, `
UPDATE habits SET completions = array_append(completions, $3::date), updated_at = now()
WHERE user_id = $1 AND id = $2::uuid
RETURNING `+habitCols, userID, id, day)
	return scanHabit(row)
}

func scanHabit(row pgx.Row) (Habit, error) {
	var h Habit
	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Frequency, &h.Done, &h.Notes,
		&h.Date, &h.Completions, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Habit{}, ErrNotFound
	}
	if err != nil {
		return Habit{}, err
	}
	return h, nil
}
