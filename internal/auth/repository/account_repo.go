package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/projecthub/projecthub-backend/internal/auth/domain"
)

// AccountRepository provides persistence operations for accounts.
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetByEmail retrieves an account by its email. Email matching is
// case-sensitive, matching the unique index on the column.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const q = `
SELECT id, email, password_hash, role, created_at
FROM accounts
WHERE email = $1;
`
	var a domain.Account
	err := r.db.QueryRow(ctx, q, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByID retrieves an account by its id.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	const q = `
SELECT id, email, password_hash, role, created_at
FROM accounts
WHERE id = $1;
`
	var a domain.Account
	err := r.db.QueryRow(ctx, q, id).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new account. A unique violation on email maps to
// domain.ErrEmailTaken.
func (r *AccountRepository) Create(ctx context.Context, email, passwordHash, role string) (*domain.Account, error) {
	const q = `
INSERT INTO accounts (email, password_hash, role)
VALUES ($1, $2, $3)
RETURNING id, email, password_hash, role, created_at;
`
	var a domain.Account
	err := r.db.QueryRow(ctx, q, email, passwordHash, role).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return &a, nil
}
