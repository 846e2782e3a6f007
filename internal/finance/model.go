package finance

import (
	"strings"
	"time"
)

const (
	TypeExpense   = "expense"
	TypeGain      = "gain"
	TypeAssetsBuy = "assets_buy"
)

// Record is one finance transaction.
type Record struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Type        string    `db:"type" json:"type"`
	Amount      float64   `db:"amount" json:"amount"`
	Label       string    `db:"label" json:"label"`
	Description string    `db:"description" json:"description"`
	Date        time.Time `db:"date" json:"date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CreateRequest accepts both the canonical type+amount shape and the legacy
// expense/gain/assets_buy buckets. Only the canonical shape is stored.
type CreateRequest struct {
	Type        string   `json:"type" validate:"omitempty,oneof=expense gain assets_buy"`
	Amount      *float64 `json:"amount" validate:"omitempty,gte=0"`
	Expense     float64  `json:"expense" validate:"gte=0"`
	Gain        float64  `json:"gain" validate:"gte=0"`
	AssetsBuy   float64  `json:"assets_buy" validate:"gte=0"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Date        string   `json:"date" validate:"required"`
}

// Resolve collapses the request to a canonical (type, amount) pair. When
// amount is absent it defaults to the sum of the legacy buckets, and an
// unset type is inferred from the largest bucket.
func (r CreateRequest) Resolve() (string, float64) {
	typ := strings.TrimSpace(r.Type)
	var amount float64

	if r.Amount != nil {
		amount = *r.Amount
	} else {
		amount = r.Expense + r.Gain + r.AssetsBuy
		if typ == "" {
			typ = dominantType(r.Expense, r.Gain, r.AssetsBuy)
		}
	}
	if typ == "" {
		typ = TypeExpense
	}
	return typ, amount
}

func dominantType(expense, gain, assetsBuy float64) string {
	switch {
	case gain > expense && gain > assetsBuy:
		return TypeGain
	case assetsBuy > expense && assetsBuy > gain:
		return TypeAssetsBuy
	default:
		return TypeExpense
	}
}

// UpdateRequest carries the whitelisted patchable fields; nil means leave
// the stored value alone.
type UpdateRequest struct {
	Type        *string  `json:"type" validate:"omitempty,oneof=expense gain assets_buy"`
	Amount      *float64 `json:"amount" validate:"omitempty,gte=0"`
	Label       *string  `json:"label"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

// Totals is the read-side aggregation over a date range.
type Totals struct {
	Income  float64            `json:"income"`
	Expense float64            `json:"expense"`
	Net     float64            `json:"net"`
	ByType  map[string]float64 `json:"by_type"`
}
