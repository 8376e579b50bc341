// Command auth_cleanup removes magic link rows that can never be used again:
// consumed links and links past their expiry. Meant to run from cron.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"courseportal/internal/config"
	"courseportal/internal/database"
	"courseportal/internal/domain"
	"courseportal/internal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Keep consumed links for a day so that duplicate consume attempts still
	// get a distinct "already used" answer instead of "invalid".
	cutoff := time.Now().UTC().Add(-24 * time.Hour)

	res := db.Where("expires_at < ? OR (consumed_at IS NOT NULL AND consumed_at < ?)", cutoff, cutoff).
		Delete(&domain.MagicLink{})
	if res.Error != nil {
		log.Error("cleanup failed", slog.Any("error", res.Error))
		os.Exit(1)
	}

	log.Info("magic link cleanup complete", slog.Int64("deleted", res.RowsAffected))
}
