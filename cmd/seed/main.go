package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/kimianj/Continuum/internal/models"
	"github.com/kimianj/Continuum/internal/storage"
	"github.com/kimianj/Continuum/internal/storage/postgres"
	"github.com/kimianj/Continuum/internal/storage/sqlite"
)

// Seed populates the store with demo accounts and notes. This is also the
// only path that creates admin users; the HTTP surface never sets the flag.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := openStore(ctx, databaseURL)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer store.Close()

	if err := seed(ctx, store); err != nil {
		log.Fatalf("seed: %v", err)
	}

	fmt.Println("Database seeded successfully.")
	fmt.Println("Admin: admin@notes.app / admin123!")
	fmt.Println("Admin: superadmin@notes.app / superadmin456!")
	fmt.Println("User:  john@example.com / user123!")
	fmt.Println("User:  jane@example.com / user123!")
}

func seed(ctx context.Context, store storage.Store) error {
	admin1, err := ensureUser(ctx, store, "admin@notes.app", "admin123!", "Admin User", true)
	if err != nil {
		return err
	}
	admin2, err := ensureUser(ctx, store, "superadmin@notes.app", "superadmin456!", "Super Admin", true)
	if err != nil {
		return err
	}
	user1, err := ensureUser(ctx, store, "john@example.com", "user123!", "John Doe", false)
	if err != nil {
		return err
	}
	user2, err := ensureUser(ctx, store, "jane@example.com", "user123!", "Jane Smith", false)
	if err != nil {
		return err
	}

	notes := []struct {
		owner          models.User
		title, content string
	}{
		{admin1, "Admin Dashboard Ideas", "Consider adding analytics and user management features to the admin panel."},
		{admin1, "Security Checklist", "1. Implement rate limiting\n2. Add input validation\n3. Set up HTTPS\n4. Regular backups"},
		{admin2, "Platform Roadmap", "Q1: User features\nQ2: Mobile app\nQ3: API integrations\nQ4: Enterprise features"},
		{user1, "Meeting Notes - Project Kickoff", "Discussed project timeline and deliverables. Next meeting scheduled for Friday."},
		{user1, "Shopping List", "- Milk\n- Eggs\n- Bread\n- Coffee"},
		{user1, "Book Recommendations", "1. Atomic Habits\n2. Deep Work\n3. The Pragmatic Programmer"},
		{user2, "Recipe: Pasta Carbonara", "Ingredients: pasta, eggs, parmesan, pancetta, black pepper\n\nCook pasta, fry pancetta, mix eggs with cheese, combine all."},
		{user2, "Workout Plan", "Monday: Chest/Triceps\nWednesday: Back/Biceps\nFriday: Legs\nSaturday: Shoulders/Core"},
	}
	for _, n := range notes {
		if _, err := store.CreateNote(ctx, n.owner.ID, n.title, n.content); err != nil {
			return fmt.Errorf("create note %q: %w", n.title, err)
		}
	}
	return nil
}

// ensureUser creates the account, or returns the existing one when the email
// is already registered so reruns do not fail.
func ensureUser(ctx context.Context, store storage.Store, email, password, name string, isAdmin bool) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := store.CreateUser(ctx, email, string(hash), name, isAdmin)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return store.FindByEmail(ctx, email)
		}
		return models.User{}, fmt.Errorf("create user %s: %w", email, err)
	}
	return user, nil
}

func openStore(ctx context.Context, databaseURL string) (storage.Store, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.New(ctx, databaseURL)
	}
	return sqlite.New(ctx, databaseURL)
}
