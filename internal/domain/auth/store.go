package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryer is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type Queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store reads accounts from the Postgres users table.
type Store struct {
	DB Queryer
}

func NewStore(db Queryer) *Store {
	return &Store{DB: db}
}

const findUserSQL = `SELECT username, full_name, email, password_hash, disabled FROM users WHERE username = $1`

const createUserSQL = `INSERT INTO users (username, full_name, email, password_hash, disabled) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (username) DO NOTHING`

func (s *Store) FindUser(ctx context.Context, username string) (User, error) {
	var out User
	err := s.DB.QueryRow(ctx, findUserSQL, username).
		Scan(&out.Username, &out.FullName, &out.Email, &out.PasswordHash, &out.Disabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, user User) error {
	tag, err := s.DB.Exec(ctx, createUserSQL, user.Username, user.FullName, user.Email, user.PasswordHash, user.Disabled)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserExists
	}
	return nil
}
