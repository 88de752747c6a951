// Package db opens the backing document store named by DATABASE_URL.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jotter-dev/jotter/internal/store"
	"github.com/jotter-dev/jotter/internal/store/gormstore"
	"github.com/jotter-dev/jotter/internal/store/mongostore"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnsupportedScheme = errors.New("unsupported database url scheme")

// ConnectDatabase picks a backend from the url scheme. Relational backends
// are migrated before the store is returned.
func ConnectDatabase(ctx context.Context, url string) (store.Store, error) {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		scheme, rest, ok = strings.Cut(url, ":")
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, url)
	}

	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return mongostore.Connect(ctx, url)
	case "postgres", "postgresql":
		return openGorm(ctx, postgres.Open(url))
	case "sqlite", "sqlite3":
		return openGorm(ctx, sqlite.Open(rest))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

func openGorm(ctx context.Context, dialector gorm.Dialector) (store.Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s, err := prepareGorm(ctx, db, dialector.Name())
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	return s, nil
}

// prepareGorm migrates db and checks it is reachable. The caller owns the
// pool and closes it on error.
func prepareGorm(ctx context.Context, db *gorm.DB, dialect string) (store.Store, error) {
	// Each sqlite connection to :memory: opens a fresh database.
	if dialect == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := MigrateDatabase(db); err != nil {
		return nil, err
	}

	s := gormstore.New(db)
	if err := s.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return s, nil
}

func MigrateDatabase(db *gorm.DB) error {
	if err := gormstore.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
