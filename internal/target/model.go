package target

import "time"

// Target is a goal with an optional one-way achieve transition.
type Target struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"user_id"`
	Title      string     `db:"title" json:"title"`
	Priority   string     `db:"priority" json:"priority"`
	Notes      string     `db:"notes" json:"notes"`
	TargetDate time.Time  `db:"target_date" json:"target_date"`
	IsAchieved bool       `db:"is_achieved" json:"is_achieved"`
	AchievedAt *time.Time `db:"achieved_at" json:"achieved_at"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Title      string `json:"title" validate:"required"`
	Priority   string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Notes      string `json:"notes"`
	TargetDate string `json:"target_date" validate:"required"`
}

type UpdateRequest struct {
	Title      *string `json:"title"`
	Priority   *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Notes      *string `json:"notes"`
	TargetDate *string `json:"target_date"`
	IsAchieved *bool   `json:"is_achieved"`
}
