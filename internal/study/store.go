package study

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

var ErrNotFound = errors.New("study session not found")

type Filter struct {
	Range   daterange.Range
	Subject string
}

type Patch struct {
	Subject  *string
	Topic    *string
	Duration *float64
	Notes    *string
	Date     *time.Time
}

type Store interface {
	Insert(ctx context.Context, s Session) (Session, error)
	List(ctx context.Context, userID string, f Filter) ([]Session, error)
	Get(ctx context.Context, userID, id string) (Session, error)
	Update(ctx context.Context, userID, id string, p Patch) (Session, error)
	Delete(ctx context.Context, userID, id string) error
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const sessionCols = "id, user_id, subject, topic, duration, notes, date, created_at, updated_at"

func (r *Repository) Insert(ctx context.Context, s Session) (Session, error) {
	row := r.Pool.QueryRow(ctx, `
INSERT INTO study_sessions (user_id, subject, topic, duration, notes, date)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+sessionCols,
		s.UserID, s.Subject, s.Topic, s.Duration, s.Notes, s.Date)
	return scanSession(row)
}

func (r *Repository) List(ctx context.Context, userID string, f Filter) ([]Session, error) {
	q := `SELECT ` + sessionCols + ` FROM study_sessions WHERE user_id = $1`
	args := []any{userID}

	if f.Range.HasStart {
		args = append(args, f.Range.Start)
		q += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if f.Range.HasEnd {
		args = append(args, f.Range.End)
		q += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if f.Subject != "" {
		args = append(args, f.Subject)
		q += fmt.Sprintf(" AND subject = $%d", len(args))
	}
	q += " ORDER BY date DESC, created_at DESC"

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id string) (Session, error) {
	row := r.Pool.QueryRow(ctx, `
SELECT `+sessionCols+` FROM study_sessions WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	return scanSession(row)
}

func (r *Repository) Update(ctx context.Context, userID, id string, p Patch) (Session, error) {
	sets := []string{"updated_at = now()"}
	args := []any{userID, id}

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Subject != nil {
		set("subject", *p.Subject)
	}
	if p.Topic != nil {
		set("topic", *p.Topic)
	}
	if p.Duration != nil {
		set("duration", *p.Duration)
	}
	if p.Notes != nil {
		set("notes", *p.Notes)
	}
	if p.Date != nil {
		set("date", *p.Date)
	}

	row := r.Pool.QueryRow(ctx, `
UPDATE study_sessions SET `+strings.Join(sets, ", ")+`
WHERE user_id = $1 AND id = $2::uuid
RETURNING `+sessionCols, args...)
	return scanSession(row)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(ctx, `
DELETE FROM study_sessions WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSession(row pgx.Row) (Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.UserID, &s.Subject, &s.Topic, &s.Duration, &s.Notes,
		&s.Date, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	return s, nil
}
