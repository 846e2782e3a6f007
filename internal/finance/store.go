package finance

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

var ErrNotFound = errors.New("finance record not found")

// Filter narrows List results.
type Filter struct {
	Range daterange.Range
	Type  string
}

// Patch carries resolved field updates for the store layer.
type Patch struct {
	Type        *string
	Amount      *float64
	Label       *string
	Description *string
	Date        *time.Time
}

// Store is the persistence surface the finance handlers need.
type Store interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	List(ctx context.Context, userID string, f Filter) ([]Record, error)
	Get(ctx context.Context, userID, id string) (Record, error)
	Update(ctx context.Context, userID, id string, p Patch) (Record, error)
	Delete(ctx context.Context, userID, id string) error
	Totals(ctx context.Context, userID string, r daterange.Range) (Totals, error)
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const recordCols = "id, user_id, type, amount, label, description, date, created_at, updated_at"

func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	row := r.Pool.QueryRow(ctx, `
INSERT INTO finance_records (user_id, type, amount, label, description, date)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+recordCols,
		rec.UserID, rec.Type, rec.Amount, rec.Label, rec.Description, rec.Date)
	return scanRecord(row)
}

func (r *Repository) List(ctx context.Context, userID string, f Filter) ([]Record, error) {
	q := `SELECT ` + recordCols + ` FROM finance_records WHERE user_id = $1`
	args := []any{userID}

	if f.Range.HasStart {
		args = append(args, f.Range.Start)
		q += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if f.Range.HasEnd {
		args = append(args, f.Range.End)
		q += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		q += fmt.Sprintf(" AND type = $%d", len(args))
	}
	q += " ORDER BY date DESC, created_at DESC"

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id string) (Record, error) {
	row := r.Pool.QueryRow(ctx, `
SELECT `+recordCols+` FROM finance_records WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	return scanRecord(row)
}

func (r *Repository) Update(ctx context.Context, userID, id string, p Patch) (Record, error) {
	sets := []string{"updated_at = now()"}
	args := []any{userID, id}

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Type != nil {
		set("type", *p.Type)
	}
	if p.Amount != nil {
		set("amount", *p.Amount)
	}
	if p.Label != nil {
		set("label", *p.Label)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Date != nil {
		set("date", *p.Date)
	}

	row := r.Pool.QueryRow(ctx, `
UPDATE finance_records SET `+strings.Join(sets, ", ")+`
WHERE user_id = $1 AND id = $2::uuid
RETURNING `+recordCols, args...)
	return scanRecord(row)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(ctx, `
DELETE FROM finance_records WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Totals(ctx context.Context, userID string, dr daterange.Range) (Totals, error) {
	q := `SELECT type, COALESCE(SUM(amount), 0) FROM finance_records WHERE user_id = $1`
	args := []any{userID}
	if dr.HasStart {
		args = append(args, dr.Start)
		q += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if dr.HasEnd {
		args = append(args, dr.End)
		q += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	q += " GROUP BY type"

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return Totals{}, err
	}
	defer rows.Close()

	byType := map[string]float64{}
	for rows.Next() {
		var typ string
		var sum float64
		if err := rows.Scan(&typ, &sum); err != nil {
			return Totals{}, err
		}
		byType[typ] = sum
	}
	if err := rows.Err(); err != nil {
		return Totals{}, err
	}
	return BuildTotals(byType), nil
}

// BuildTotals buckets per-type sums into income and expense. Gains are
// income; expenses and asset purchases are both money out.
func BuildTotals(byType map[string]float64) Totals {
	income := byType[TypeGain]
	expense := byType[TypeExpense] + byType[TypeAssetsBuy]
	return Totals{
		Income:  income,
		Expense: expense,
		Net:     income - expense,
		ByType:  byType,
	}
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Type, &rec.Amount, &rec.Label,
		&rec.Description, &rec.Date, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}
