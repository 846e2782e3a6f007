package food

import "time"

const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategorySnacks    = "snacks"
	CategoryGrocery   = "grocery"
	CategoryOther     = "other"
)

// Item is one food purchase or meal entry.
type Item struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	Name         string    `db:"name" json:"name"`
	Category     string    `db:"category" json:"category"`
	Price        float64   `db:"price" json:"price"`
	Quantity     float64   `db:"quantity" json:"quantity"`
	Notes        string    `db:"notes" json:"notes"`
	PurchaseDate time.Time `db:"purchase_date" json:"purchase_date"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category" validate:"omitempty,oneof=breakfast lunch dinner snacks grocery other"`
	Price        float64 `json:"price" validate:"gte=0"`
	Quantity     float64 `json:"quantity" validate:"gte=0"`
	Notes        string  `json:"notes"`
	PurchaseDate string  `json:"purchase_date" validate:"required"`
}

type UpdateRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category" validate:"omitempty,oneof=breakfast lunch dinner snacks grocery other"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Quantity     *float64 `json:"quantity" validate:"omitempty,gte=0"`
	Notes        *string  `json:"notes"`
	PurchaseDate *string  `json:"purchase_date"`
}
