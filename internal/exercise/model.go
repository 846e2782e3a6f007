package exercise

import "time"

// Exercise is one workout entry.
type Exercise struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category"`
	Duration  float64   `db:"duration" json:"duration"`
	Done      bool      `db:"done" json:"done"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"omitempty,oneof=cardio strength flexibility sports other"`
	Duration float64 `json:"duration" validate:"gte=0"`
	Done     bool    `json:"done"`
	Date     string  `json:"date" validate:"required"`
}

type UpdateRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category" validate:"omitempty,oneof=cardio strength flexibility sports other"`
	Duration *float64 `json:"duration" validate:"omitempty,gte=0"`
	Done     *bool    `json:"done"`
	Date     *string  `json:"date"`
}
