package models

import "time"

// User captures a registered account. The password hash never leaves the
// storage layer in an API response.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminUser is the admin dashboard view of a user, including how many notes
// they own.
type AdminUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"created_at"`
	NoteCount int64     `json:"note_count"`
}

// Stats aggregates store-wide counts for the admin dashboard.
type Stats struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalNotes  int64 `json:"totalNotes"`
	TotalAdmins int64 `json:"totalAdmins"`
}
