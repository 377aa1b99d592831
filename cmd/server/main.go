package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kimianj/Continuum/internal/config"
	"github.com/kimianj/Continuum/internal/server"
	"github.com/kimianj/Continuum/internal/storage"
	"github.com/kimianj/Continuum/internal/storage/postgres"
	"github.com/kimianj/Continuum/internal/storage/sqlite"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx := context.Background()
	store, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer store.Close()

	srv := server.New(cfg, store, logger)

	go func() {
		logger.Info("continuum listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown", "error", err)
	}
}

// openStore picks the backend by DSN: postgres URLs go to the pgx store,
// anything else is treated as a SQLite file path.
func openStore(ctx context.Context, databaseURL string) (storage.Store, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.New(ctx, databaseURL)
	}
	return sqlite.New(ctx, databaseURL)
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
