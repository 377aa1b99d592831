package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kimianj/Continuum/internal/models"
	"github.com/kimianj/Continuum/internal/storage"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// CreateUser inserts a new user row. The email unique constraint surfaces as
// storage.ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash, name string, isAdmin bool) (models.User, error) {
	const query = `
		INSERT INTO users (email, password, name, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password, name, is_admin, created_at
	`

	row := s.pool.QueryRow(ctx, query, email, passwordHash, name, isAdmin)
	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, email, password, name, is_admin, created_at
		FROM users
		WHERE email = $1
	`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// FindByID fetches a user by identifier.
func (s *Store) FindByID(ctx context.Context, id int64) (models.User, error) {
	const query = `
		SELECT id, email, password, name, is_admin, created_at
		FROM users
		WHERE id = $1
	`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
