package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"winelink/internal/config"
	"winelink/internal/logger"
	"winelink/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured store. In read-only mode a SQLite file is
// opened through its URI form with mode=ro and no migration is attempted.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Gorm()})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Database.Driver, err)
	}

	if cfg.Database.ReadOnly {
		logger.Info("Database opened read-only, skipping migration", "driver", cfg.Database.Driver)
		return db, nil
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		return sqlite.Open(sqliteDSN(cfg)), nil
	case "postgres":
		return postgres.Open(cfg.Database.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func sqliteDSN(cfg *config.Config) string {
	dsn := cfg.Database.DSN
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return dsn
	}
	if cfg.Database.ReadOnly {
		return fmt.Sprintf("file:%s?mode=ro", filepath.ToSlash(dsn))
	}
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("Failed to create database directory", "dir", dir, "error", err)
		}
	}
	return dsn
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Wine{}); err != nil {
		return fmt.Errorf("failed to migrate wine table: %w", err)
	}
	return nil
}

// Ping checks that the underlying connection is usable.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
