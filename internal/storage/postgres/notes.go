package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kimianj/Continuum/internal/models"
	"github.com/kimianj/Continuum/internal/storage"
)

// ListForOwner returns the owner's notes, most recently updated first.
func (s *Store) ListForOwner(ctx context.Context, ownerID int64) ([]models.Note, error) {
	const query = `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetForOwner fetches a single note scoped to its owner. A note owned by
// someone else is storage.ErrNotFound, same as a missing one.
func (s *Store) GetForOwner(ctx context.Context, id, ownerID int64) (models.Note, error) {
	const query = `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE id = $1 AND user_id = $2
	`
	return scanNote(s.pool.QueryRow(ctx, query, id, ownerID))
}

// CreateNote inserts a note for the owner with server-assigned identifier and
// timestamps.
func (s *Store) CreateNote(ctx context.Context, ownerID int64, title, content string) (models.Note, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return models.Note{}, storage.ErrMissingFields
	}

	const query = `
		INSERT INTO notes (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, title, content, created_at, updated_at
	`
	return scanNote(s.pool.QueryRow(ctx, query, ownerID, title, content))
}

// UpdateNote rewrites title and content of the owner's note and refreshes
// updated_at. The owner reference and created_at are immutable.
func (s *Store) UpdateNote(ctx context.Context, id, ownerID int64, title, content string) (models.Note, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return models.Note{}, storage.ErrMissingFields
	}

	const query = `
		UPDATE notes
		SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, title, content, created_at, updated_at
	`
	return scanNote(s.pool.QueryRow(ctx, query, title, content, id, ownerID))
}

// DeleteNote removes the owner's note, reporting whether a row was deleted.
func (s *Store) DeleteNote(ctx context.Context, id, ownerID int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListAllNotes returns every note joined with its owner, most recently
// updated first. Admin read surface.
func (s *Store) ListAllNotes(ctx context.Context) ([]models.AdminNote, error) {
	const query = `
		SELECT n.id, n.title, n.content, n.created_at, n.updated_at,
		       u.id, u.name, u.email
		FROM notes n
		JOIN users u ON n.user_id = u.id
		ORDER BY n.updated_at DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all notes: %w", err)
	}
	defer rows.Close()

	notes := []models.AdminNote{}
	for rows.Next() {
		var n models.AdminNote
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt,
			&n.UserID, &n.UserName, &n.UserEmail); err != nil {
			return nil, fmt.Errorf("scan admin note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// ListUsers returns every user with their note count, newest account first.
// Admin read surface.
func (s *Store) ListUsers(ctx context.Context) ([]models.AdminUser, error) {
	const query = `
		SELECT u.id, u.email, u.name, u.is_admin, u.created_at, COUNT(n.id)
		FROM users u
		LEFT JOIN notes n ON u.id = n.user_id
		GROUP BY u.id
		ORDER BY u.created_at DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.AdminUser{}
	for rows.Next() {
		var u models.AdminUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.IsAdmin, &u.CreatedAt, &u.NoteCount); err != nil {
			return nil, fmt.Errorf("scan admin user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Stats returns store-wide counts for the admin dashboard.
func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers); err != nil {
		return models.Stats{}, fmt.Errorf("count users: %w", err)
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notes`).Scan(&stats.TotalNotes); err != nil {
		return models.Stats{}, fmt.Errorf("count notes: %w", err)
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_admin`).Scan(&stats.TotalAdmins); err != nil {
		return models.Stats{}, fmt.Errorf("count admins: %w", err)
	}
	return stats, nil
}

func scanNote(row pgx.Row) (models.Note, error) {
	var n models.Note
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Note{}, storage.ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}
