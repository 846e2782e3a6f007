package sleep

import "time"

// Log is one night's sleep entry.
type Log struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Day       time.Time `db:"day" json:"day"`
	Duration  float64   `db:"duration" json:"duration"`
	Quality   string    `db:"quality" json:"quality"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Day      string  `json:"day" validate:"required"`
	Duration float64 `json:"duration" validate:"gte=0"`
	Quality  string  `json:"quality" validate:"omitempty,oneof=poor fair good excellent"`
	Notes    string  `json:"notes"`
}

type UpdateRequest struct {
	Day      *string  `json:"day"`
	Duration *float64 `json:"duration" validate:"omitempty,gte=0"`
	Quality  *string  `json:"quality" validate:"omitempty,oneof=poor fair good excellent"`
	Notes    *string  `json:"notes"`
}
