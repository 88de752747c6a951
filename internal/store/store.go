// Package store defines the repository contracts the GraphQL resolvers run
// against. Implementations live in the mongostore and gormstore subpackages.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jotter-dev/jotter/internal/models"
)

var (
	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned when an id is not well-formed for the backend.
	ErrInvalidID = errors.New("invalid id")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
}

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	FindByID(ctx context.Context, id string) (*models.Note, error)
	FindAll(ctx context.Context) ([]models.Note, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Note, error)
	Update(ctx context.Context, id string, patch models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, id string) (*models.Note, error)
}

type TodoRepository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	FindByID(ctx context.Context, id string) (*models.Todo, error)
	FindAll(ctx context.Context) ([]models.Todo, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Todo, error)
	// FindBetween returns todos with after < ForDate < before, newest first.
	FindBetween(ctx context.Context, after, before time.Time) ([]models.Todo, error)
	Update(ctx context.Context, id string, patch models.TodoPatch) (*models.Todo, error)
	Delete(ctx context.Context, id string) (*models.Todo, error)
}

// Store vends the three repositories over one long-lived connection.
type Store interface {
	Users() UserRepository
	Notes() NoteRepository
	Todos() TodoRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
