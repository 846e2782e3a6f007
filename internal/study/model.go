package study

import "time"

// Session is one study sitting.
type Session struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Subject   string    `db:"subject" json:"subject"`
	Topic     string    `db:"topic" json:"topic"`
	Duration  float64   `db:"duration" json:"duration"`
	Notes     string    `db:"notes" json:"notes"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Subject  string  `json:"subject" validate:"required"`
	Topic    string  `json:"topic"`
	Duration float64 `json:"duration" validate:"gte=0"`
	Notes    string  `json:"notes"`
	Date     string  `json:"date" validate:"required"`
}

type UpdateRequest struct {
	Subject  *string  `json:"subject"`
	Topic    *string  `json:"topic"`
	Duration *float64 `json:"duration" validate:"omitempty,gte=0"`
	Notes    *string  `json:"notes"`
	Date     *string  `json:"date"`
}
