package food

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunsachdeva/lifetrack-backend/internal/daterange"
	"github.com/arjunsachdeva/lifetrack-backend/internal/finance"
)

var ErrNotFound = errors.New("food item not found")

type Filter struct {
	Range    daterange.Range
	Category string
}

type Patch struct {
	Name         *string
	Category     *string
	Price        *float64
	Quantity     *float64
	Notes        *string
	PurchaseDate *time.Time
}

// Store is the persistence surface the food handlers need.
type Store interface {
	// Insert stores the item; when derived is non-nil the finance expense is
	// written in the same transaction, so both rows commit or neither does.
	Insert(ctx context.Context, item Item, derived *finance.Record) (Item, error)
	List(ctx context.Context, userID string, f Filter) ([]Item, error)
	Get(ctx context.Context, userID, id string) (Item, error)
	Update(ctx context.Context, userID, id string, p Patch) (Item, error)
	Delete(ctx context.Context, userID, id string) error
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const itemCols = "id, user_id, name, category, price, quantity, notes, purchase_date, created_at, updated_at"

func (r *Repository) Insert(ctx context.Context, item Item, derived *finance.Record) (Item, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Item{}, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
INSERT INTO food_items (user_id, name, category, price, quantity, notes, purchase_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+itemCols,
		item.UserID, item.Name, item.Category, item.Price, item.Quantity, item.Notes, item.PurchaseDate)
	stored, err := scanItem(row)
	if err != nil {
		return Item{}, err
	}

	if derived != nil {
		_, err = tx.Exec(ctx, `
INSERT INTO finance_records (user_id, type, amount, label, description, date)
VALUES ($1, $2, $3, $4, $5, $6)
`, derived.UserID, derived.Type, derived.Amount, derived.Label, derived.Description, derived.Date)
		if err != nil {
			return Item{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Item{}, err
	}
	return stored, nil
}

func (r *Repository) List(ctx context.Context, userID string, f Filter) ([]Item, error) {
	q := `SELECT ` + itemCols + ` FROM food_items WHERE user_id = $1`
	args := []any{userID}

	if f.Range.HasStart {
		args = append(args, f.Range.Start)
		q += fmt.Sprintf(" AND purchase_date >= $%d", len(args))
	}
	if f.Range.HasEnd {
		args = append(args, f.Range.End)
		q += fmt.Sprintf(" AND purchase_date <= $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	q += " ORDER BY purchase_date DESC, created_at DESC"

	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, userID, id string) (Item, error) {
	row := r.Pool.QueryRow(ctx, `
SELECT `+itemCols+` FROM food_items WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	return scanItem(row)
}

func (r *Repository) Update(ctx context.Context, userID, id string, p Patch) (Item, error) {
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
	if p.Price != nil {
		set("price", *p.Price)
	}
	if p.Quantity != nil {
		set("quantity", *p.Quantity)
	}
	if p.Notes != nil {
		set("notes", *p.Notes)
	}
	if p.PurchaseDate != nil {
		set("purchase_date", *p.PurchaseDate)
	}

	row := r.Pool.QueryRow(ctx, `
UPDATE food_items SET `+strings.Join(sets, ", ")+`
WHERE user_id = $1 AND id = $2::uuid
RETURNING `+itemCols, args...)
	return scanItem(row)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(ctx, `
DELETE FROM food_items WHERE user_id = $1 AND id = $2::uuid
`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Category, &item.Price,
		&item.Quantity, &item.Notes, &item.PurchaseDate, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return item, nil
}
