package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kimianj/Continuum/internal/models"
	"github.com/kimianj/Continuum/internal/storage"
)

// CreateUser inserts a new user row. The email unique constraint surfaces as
// storage.ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash, name string, isAdmin bool) (models.User, error) {
	const query = `
		INSERT INTO users (email, password, name, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query, email, passwordHash, name, isAdmin, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("last insert id: %w", err)
	}

	return models.User{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
	}, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, email, password, name, is_admin, created_at
		FROM users
		WHERE email = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

// FindByID fetches a user by identifier.
func (s *Store) FindByID(ctx context.Context, id int64) (models.User, error) {
	const query = `
		SELECT id, email, password, name, is_admin, created_at
		FROM users
		WHERE id = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *Store) scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}
