package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/reobserve/reobserve/internal/common/config"
)

// SQLite implements the Database interface using SQLite
type SQLite struct {
	store
	cfg *config.DatabaseConfig
}

// NewSQLite creates a new SQLite instance
func NewSQLite(cfg *config.DatabaseConfig) (Database, error) {
	dir := filepath.Dir(cfg.DBName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	gormDB, err := gorm.Open(sqlite.Open(cfg.DBName), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(gormDB); err != nil {
		return nil, err
	}

	return &SQLite{store: store{db: gormDB}, cfg: cfg}, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Enterprise{}, &Group{}, &User{}, &Period{}, &Release{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
