package auth

import "time"

// User is a persisted account record.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Profile is the public view of a user.
type Profile struct {
	ID        string    `json:"id"`
	FullName  *string   `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
