package api

import (
	"context"

	"github.com/graph-gophers/graphql-go"
	"github.com/jotter-dev/jotter/internal/models"
	"github.com/jotter-dev/jotter/internal/store"
)

type UserResolver struct {
	user  *models.User
	store store.Store
}

func (r *UserResolver) ID() graphql.ID { return graphql.ID(r.user.ID) }
func (r *UserResolver) FirstName() string { return r.user.FirstName }
func (r *UserResolver) LastName() string { return r.user.LastName }
func (r *UserResolver) Email() string { return r.user.Email }
func (r *UserResolver) Password() string { return r.user.Password }

func (r *UserResolver) Notes(ctx context.Context) ([]*NoteResolver, error) {
	notes, err := r.store.Notes().FindByUserID(ctx, r.user.ID)
	if err != nil {
		return nil, err
	}
	return noteResolvers(notes, r.store), nil
}

func (r *UserResolver) Todos(ctx context.Context) ([]*TodoResolver, error) {
	todos, err := r.store.Todos().FindByUserID(ctx, r.user.ID)
	if err != nil {
		return nil, err
	}
	return todoResolvers(todos, r.store), nil
}

type NoteResolver struct {
	note  *models.Note
	store store.Store
}

func (r *NoteResolver) ID() graphql.ID { return graphql.ID(r.note.ID) }
func (r *NoteResolver) Title() string { return r.note.Title }
func (r *NoteResolver) Description() string { return r.note.Description }

func (r *NoteResolver) User(ctx context.Context) (*UserResolver, error) {
	return owner(ctx, r.store, r.note.UserID)
}

type TodoResolver struct {
	todo  *models.Todo
	store store.Store
}

func (r *TodoResolver) ID() graphql.ID { return graphql.ID(r.todo.ID) }
func (r *TodoResolver) Title() string { return r.todo.Title }
func (r *TodoResolver) IsCompleted() bool { return r.todo.IsCompleted }
func (r *TodoResolver) ForDate() DateTime { return DateTime{r.todo.ForDate} }

func (r *TodoResolver) User(ctx context.Context) (*UserResolver, error) {
	return owner(ctx, r.store, r.todo.UserID)
}

// owner looks up the user a note or todo points at. A dangling or malformed
// reference resolves to null.
func owner(ctx context.Context, s store.Store, userID string) (*UserResolver, error) {
	user, err := s.Users().FindByID(ctx, userID)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	return &UserResolver{user: user, store: s}, nil
}

func userResolver(user *models.User, s store.Store) *UserResolver {
	if user == nil {
		return nil
	}
	return &UserResolver{user: user, store: s}
}

func noteResolver(note *models.Note, s store.Store) *NoteResolver {
	if note == nil {
		return nil
	}
	return &NoteResolver{note: note, store: s}
}

func todoResolver(todo *models.Todo, s store.Store) *TodoResolver {
	if todo == nil {
		return nil
	}
	return &TodoResolver{todo: todo, store: s}
}

func userResolvers(users []models.User, s store.Store) []*UserResolver {
	out := make([]*UserResolver, len(users))
	for i := range users {
		out[i] = &UserResolver{user: &users[i], store: s}
	}
	return out
}

func noteResolvers(notes []models.Note, s store.Store) []*NoteResolver {
	out := make([]*NoteResolver, len(notes))
	for i := range notes {
		out[i] = &NoteResolver{note: &notes[i], store: s}
	}
	return out
}

func todoResolvers(todos []models.Todo, s store.Store) []*TodoResolver {
	out := make([]*TodoResolver, len(todos))
	for i := range todos {
		out[i] = &TodoResolver{todo: &todos[i], store: s}
	}
	return out
}
