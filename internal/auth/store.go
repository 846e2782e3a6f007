package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Store is the persistence surface the auth handlers need.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string, fullName *string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) CreateUser(ctx context.Context, email, passwordHash string, fullName *string) (User, error) {
	var u User
	err := r.Pool.QueryRow(ctx, `
INSERT INTO users (email, password_hash, full_name)
VALUES ($1, $2, $3)
RETURNING id, email, password_hash, full_name, created_at
`, email, passwordHash, fullName).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.scanOne(r.Pool.QueryRow(ctx, `
SELECT id, email, password_hash, full_name, created_at
FROM users WHERE email = $1
`, email))
}

func (r *Repository) GetByID(ctx context.Context, id string) (User, error) {
	return r.scanOne(r.Pool.QueryRow(ctx, `
SELECT id, email, password_hash, full_name, created_at
FROM users WHERE id = $1::uuid
`, id))
}

func (r *Repository) scanOne(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
