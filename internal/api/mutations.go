package api

import (
	"context"

	"github.com/graph-gophers/graphql-go"
	"github.com/jotter-dev/jotter/internal/models"
	"github.com/jotter-dev/jotter/internal/utils"
)

type addUserArgs struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type addNoteArgs struct {
	Title       string
	Description string
	UserID      graphql.ID
}

type addTodoArgs struct {
	Title       string
	ForDate     string
	IsCompleted bool
	UserID      graphql.ID
}

type updateUserArgs struct {
	ID        graphql.ID
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

type updateNoteArgs struct {
	ID          graphql.ID
	Title       *string
	Description *string
	UserID      *graphql.ID
}

type updateTodoArgs struct {
	ID          graphql.ID
	Title       *string
	ForDate     *DateTime
	IsCompleted *bool
	UserID      *graphql.ID
}

type idArgs struct {
	ID graphql.ID
}

func (r *Resolver) AddUser(ctx context.Context, args addUserArgs) (*UserResolver, error) {
	user, err := r.store.Users().Create(ctx, &models.User{
		FirstName: args.FirstName,
		LastName:  args.LastName,
		Email:     args.Email,
		Password:  args.Password,
	})
	if err != nil {
		return nil, r.storeError("addUser", err)
	}
	return userResolver(user, r.store), nil
}

func (r *Resolver) AddNote(ctx context.Context, args addNoteArgs) (*NoteResolver, error) {
	note, err := r.store.Notes().Create(ctx, &models.Note{
		Title:       args.Title,
		Description: args.Description,
		UserID:      string(args.UserID),
	})
	if err != nil {
		return nil, r.storeError("addNote", err)
	}
	return noteResolver(note, r.store), nil
}

func (r *Resolver) AddTodo(ctx context.Context, args addTodoArgs) (*TodoResolver, error) {
	forDate, err := utils.ParseDateTime(args.ForDate)
	if err != nil {
		return nil, err
	}

	todo, err := r.store.Todos().Create(ctx, &models.Todo{
		Title:       args.Title,
		ForDate:     forDate,
		IsCompleted: args.IsCompleted,
		UserID:      string(args.UserID),
	})
	if err != nil {
		return nil, r.storeError("addTodo", err)
	}
	return todoResolver(todo, r.store), nil
}

// UpdateUser writes only the arguments that were supplied and returns the
// stored user afterwards.
func (r *Resolver) UpdateUser(ctx context.Context, args updateUserArgs) (*UserResolver, error) {
	user, err := r.store.Users().Update(ctx, string(args.ID), models.UserPatch{
		FirstName: args.FirstName,
		LastName:  args.LastName,
		Email:     args.Email,
		Password:  args.Password,
	})
	if err != nil {
		return nil, r.storeError("updateUser", err)
	}
	return userResolver(user, r.store), nil
}

func (r *Resolver) UpdateNote(ctx context.Context, args updateNoteArgs) (*NoteResolver, error) {
	note, err := r.store.Notes().Update(ctx, string(args.ID), models.NotePatch{
		Title:       args.Title,
		Description: args.Description,
		UserID:      idString(args.UserID),
	})
	if err != nil {
		return nil, r.storeError("updateNote", err)
	}
	return noteResolver(note, r.store), nil
}

func (r *Resolver) UpdateTodo(ctx context.Context, args updateTodoArgs) (*TodoResolver, error) {
	patch := models.TodoPatch{
		Title:       args.Title,
		IsCompleted: args.IsCompleted,
		UserID:      idString(args.UserID),
	}
	if args.ForDate != nil {
		forDate := args.ForDate.Time
		patch.ForDate = &forDate
	}

	todo, err := r.store.Todos().Update(ctx, string(args.ID), patch)
	if err != nil {
		return nil, r.storeError("updateTodo", err)
	}
	return todoResolver(todo, r.store), nil
}

func (r *Resolver) DeleteUser(ctx context.Context, args idArgs) (*UserResolver, error) {
	user, err := r.store.Users().Delete(ctx, string(args.ID))
	if err != nil {
		return nil, r.storeError("deleteUser", err)
	}
	return userResolver(user, r.store), nil
}

func (r *Resolver) DeleteNote(ctx context.Context, args idArgs) (*NoteResolver, error) {
	note, err := r.store.Notes().Delete(ctx, string(args.ID))
	if err != nil {
		return nil, r.storeError("deleteNote", err)
	}
	return noteResolver(note, r.store), nil
}

func (r *Resolver) DeleteTodo(ctx context.Context, args idArgs) (*TodoResolver, error) {
	todo, err := r.store.Todos().Delete(ctx, string(args.ID))
	if err != nil {
		return nil, r.storeError("deleteTodo", err)
	}
	return todoResolver(todo, r.store), nil
}

func idString(id *graphql.ID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}

