package database

import (
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the cgo-free "sqlite" driver

	"courseportal/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		slog.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	slog.Info("using SQLite for local development", "dsn", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates the schema for every portal entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.MagicLink{},
		&domain.College{},
		&domain.School{},
		&domain.AcademicYear{},
		&domain.Semester{},
		&domain.Module{},
		&domain.Enrollment{},
		&domain.Document{},
		&domain.Announcement{},
		&domain.KnowledgePost{},
		&domain.KnowledgeAnswer{},
		&domain.KnowledgePostLike{},
		&domain.SystemLog{},
	)
}
