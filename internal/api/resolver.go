package api

import (
	"context"
	"errors"

	"github.com/graph-gophers/graphql-go"
	"github.com/jotter-dev/jotter/internal/store"
	"github.com/jotter-dev/jotter/internal/utils"
	"go.uber.org/zap"
)

// Resolver is the root resolver for both queries and mutations.
type Resolver struct {
	store  store.Store
	logger *zap.Logger
}

func isMissing(err error) bool {
	return errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID)
}

// storeError maps a store failure to the resolver result. A missing
// document resolves to null; a malformed id is returned as is; anything
// else is logged before it reaches the response.
func (r *Resolver) storeError(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if !errors.Is(err, store.ErrInvalidID) {
		r.logger.Error("store call failed", zap.String("op", op), zap.Error(err))
	}
	return err
}

func (r *Resolver) NoteByID(ctx context.Context, args struct{ ID graphql.ID }) (*NoteResolver, error) {
	note, err := r.store.Notes().FindByID(ctx, string(args.ID))
	if err != nil {
		return nil, r.storeError("noteById", err)
	}
	return noteResolver(note, r.store), nil
}

func (r *Resolver) Notes(ctx context.Context) ([]*NoteResolver, error) {
	notes, err := r.store.Notes().FindAll(ctx)
	if err != nil {
		return nil, r.storeError("notes", err)
	}
	return noteResolvers(notes, r.store), nil
}

func (r *Resolver) TodoByID(ctx context.Context, args struct{ ID graphql.ID }) (*TodoResolver, error) {
	todo, err := r.store.Todos().FindByID(ctx, string(args.ID))
	if err != nil {
		return nil, r.storeError("todoById", err)
	}
	return todoResolver(todo, r.store), nil
}

func (r *Resolver) Todos(ctx context.Context) ([]*TodoResolver, error) {
	todos, err := r.store.Todos().FindAll(ctx)
	if err != nil {
		return nil, r.storeError("todos", err)
	}
	return todoResolvers(todos, r.store), nil
}

// TodosByDay lists todos strictly after midnight and strictly before
// 23:59:59.000 UTC of the given day, newest first.
func (r *Resolver) TodosByDay(ctx context.Context, args struct{ ForDate string }) ([]*TodoResolver, error) {
	after, before, err := utils.ParseDay(args.ForDate)
	if err != nil {
		return nil, err
	}

	todos, err := r.store.Todos().FindBetween(ctx, after, before)
	if err != nil {
		return nil, r.storeError("todosByDay", err)
	}
	return todoResolvers(todos, r.store), nil
}

func (r *Resolver) UserByID(ctx context.Context, args struct{ ID graphql.ID }) (*UserResolver, error) {
	user, err := r.store.Users().FindByID(ctx, string(args.ID))
	if err != nil {
		return nil, r.storeError("userById", err)
	}
	return userResolver(user, r.store), nil
}

func (r *Resolver) UserByEmail(ctx context.Context, args struct{ Email string }) (*UserResolver, error) {
	user, err := r.store.Users().FindByEmail(ctx, args.Email)
	if err != nil {
		return nil, r.storeError("userByEmail", err)
	}
	return userResolver(user, r.store), nil
}

func (r *Resolver) Users(ctx context.Context) ([]*UserResolver, error) {
	users, err := r.store.Users().FindAll(ctx)
	if err != nil {
		return nil, r.storeError("users", err)
	}
	return userResolvers(users, r.store), nil
}
