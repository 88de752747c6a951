// Package gormstore implements the store contracts on top of gorm, for
// PostgreSQL in production and SQLite for local runs and tests.
package gormstore

import (
	"context"
	"fmt"

	"github.com/jotter-dev/jotter/internal/models"
	"github.com/jotter-dev/jotter/internal/store"
	"gorm.io/gorm"
)

type Store struct {
	db    *gorm.DB
	users *UserRepository
	notes *NoteRepository
	todos *TodoRepository
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:    db,
		users: &UserRepository{db: db},
		notes: &NoteRepository{db: db},
		todos: &TodoRepository{db: db},
	}
}

func (s *Store) Users() store.UserRepository { return s.users }
func (s *Store) Notes() store.NoteRepository { return s.notes }
func (s *Store) Todos() store.TodoRepository { return s.todos }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates the users, notes and todos tables when they are missing.
func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Note{},
		&models.Todo{},
	}

	migrator := db.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := db.AutoMigrate(table); err != nil {
				return fmt.Errorf("migrate %T: %w", table, err)
			}
		}
	}

	return nil
}
