package storage

import (
	"context"
	"errors"

	"github.com/kimianj/Continuum/internal/models"
)

// ErrNotFound indicates a record does not exist for the requesting owner.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrMissingFields indicates a note was submitted without a title or content.
var ErrMissingFields = errors.New("title and content are required")

// UserStore captures credential persistence needed by the auth handlers.
type UserStore interface {
	// CreateUser inserts a user with a generated identifier. Returns
	// ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, email, passwordHash, name string, isAdmin bool) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
}

// NoteStore captures note persistence. Every per-user operation scopes the
// locating query by owner; a note belonging to someone else is reported as
// ErrNotFound, identically to a note that does not exist.
type NoteStore interface {
	ListForOwner(ctx context.Context, ownerID int64) ([]models.Note, error)
	GetForOwner(ctx context.Context, id, ownerID int64) (models.Note, error)
	CreateNote(ctx context.Context, ownerID int64, title, content string) (models.Note, error)
	UpdateNote(ctx context.Context, id, ownerID int64, title, content string) (models.Note, error)
	// DeleteNote reports whether a row scoped to the owner was removed.
	DeleteNote(ctx context.Context, id, ownerID int64) (bool, error)

	// Admin read surface. No admin operation mutates another user's data.
	ListAllNotes(ctx context.Context) ([]models.AdminNote, error)
	ListUsers(ctx context.Context) ([]models.AdminUser, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// Store is the full persistence surface passed to the server.
type Store interface {
	UserStore
	NoteStore
	Close() error
}
