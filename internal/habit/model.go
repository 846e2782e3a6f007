package habit

import "time"

// Habit is a recurring practice with an append-only completion log.
type Habit struct {
	ID          string      `db:"id" json:"id"`
	UserID      string      `db:"user_id" json:"user_id"`
	Name        string      `db:"name" json:"name"`
	Frequency   string      `db:"frequency" json:"frequency"`
	Done        bool        `db:"done" json:"done"`
	Notes       string      `db:"notes" json:"notes"`
	Date        time.Time   `db:"date" json:"date"`
	Completions []time.Time `db:"completions" json:"completions"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Name      string `json:"name" validate:"required"`
	Frequency string `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	Done      bool   `json:"done"`
	Notes     string `json:"notes"`
	Date      string `json:"date" validate:"required"`
}

type UpdateRequest struct {
	Name      *string `json:"name"`
	Frequency *string `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	Done      *bool   `json:"done"`
	Notes     *string `json:"notes"`
	Date      *string `json:"date"`
}

// CompleteRequest optionally names the day being completed; empty means today.
type CompleteRequest struct {
	Date string `json:"date"`
}
