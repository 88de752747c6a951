package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/graph-gophers/graphql-go"
	"github.com/jotter-dev/jotter/internal/models"
	"github.com/jotter-dev/jotter/internal/store"
	"github.com/jotter-dev/jotter/internal/store/gormstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormstore.Migrate(db))

	s := gormstore.New(db)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func newTestSchema(t *testing.T, s store.Store) *graphql.Schema {
	t.Helper()

	schema, err := NewSchema(s, zap.NewNop())
	require.NoError(t, err)
	return schema
}

// execute runs query and decodes data into out. It returns the messages of
// any errors in the response.
func execute(t *testing.T, schema *graphql.Schema, query string, vars map[string]interface{}, out interface{}) []string {
	t.Helper()

	resp := schema.Exec(context.Background(), query, "", vars)

	var messages []string
	for _, e := range resp.Errors {
		messages = append(messages, e.Message)
	}

	if out != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, out))
	}
	return messages
}

type userJSON struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Notes     []noteJSON `json:"notes"`
	Todos     []todoJSON `json:"todos"`
}

type noteJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	User        *userJSON `json:"user"`
}

type todoJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"isCompleted"`
	ForDate     string    `json:"forDate"`
	User        *userJSON `json:"user"`
}

func addUser(t *testing.T, schema *graphql.Schema, email string) userJSON {
	t.Helper()

	var data struct {
		AddUser userJSON `json:"addUser"`
	}
	errs := execute(t, schema, `mutation($email: String!) {
		addUser(firstName: "Ada", lastName: "Lovelace", email: $email, password: "secret") {
			id firstName lastName email password
		}
	}`, map[string]interface{}{"email": email}, &data)
	require.Empty(t, errs)
	require.NotEmpty(t, data.AddUser.ID)
	return data.AddUser
}

func addTodo(t *testing.T, schema *graphql.Schema, title, forDate, userID string) todoJSON {
	t.Helper()

	var data struct {
		AddTodo todoJSON `json:"addTodo"`
	}
	errs := execute(t, schema, `mutation($title: String!, $forDate: String!, $userID: ID!) {
		addTodo(title: $title, forDate: $forDate, isCompleted: false, userID: $userID) {
			id title forDate isCompleted
		}
	}`, map[string]interface{}{"title": title, "forDate": forDate, "userID": userID}, &data)
	require.Empty(t, errs)
	return data.AddTodo
}

func TestNewSchema(t *testing.T) {
	_, err := NewSchema(newTestStore(t), zap.NewNop())
	require.NoError(t, err)
}

func TestUserRoundTrip(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))
	created := addUser(t, schema, "ada@example.com")

	var data struct {
		UserByID    *userJSON `json:"userById"`
		UserByEmail *userJSON `json:"userByEmail"`
		Users       []userJSON
	}
	errs := execute(t, schema, `query($id: ID!) {
		userById(id: $id) { id firstName lastName email password }
		userByEmail(email: "ada@example.com") { id }
		users { id }
	}`, map[string]interface{}{"id": created.ID}, &data)
	require.Empty(t, errs)

	require.NotNil(t, data.UserByID)
	assert.Equal(t, created, *data.UserByID)
	require.NotNil(t, data.UserByEmail)
	assert.Equal(t, created.ID, data.UserByEmail.ID)
	require.Len(t, data.Users, 1)
}

func TestQueries_NotFoundIsNull(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))

	resp := schema.Exec(context.Background(), `{
		noteById(id: "missing") { id }
		todoById(id: "missing") { id }
		userById(id: "missing") { id }
		userByEmail(email: "nobody@example.com") { id }
	}`, "", nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"noteById":null,"todoById":null,"userById":null,"userByEmail":null}`, string(resp.Data))
}

func TestQueries_EmptyListsAreNotNull(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))

	resp := schema.Exec(context.Background(), `{ notes { id } todos { id } users { id } todosByDay(forDate: "2024-03-15") { id } }`, "", nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"notes":[],"todos":[],"users":[],"todosByDay":[]}`, string(resp.Data))
}

func TestNoteRelationships(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))
	user := addUser(t, schema, "ada@example.com")

	var added struct {
		AddNote noteJSON `json:"addNote"`
	}
	errs := execute(t, schema, `mutation($userID: ID!) {
		addNote(title: "groceries", description: "milk", userID: $userID) { id title description user { email } }
	}`, map[string]interface{}{"userID": user.ID}, &added)
	require.Empty(t, errs)
	require.NotNil(t, added.AddNote.User)
	assert.Equal(t, "ada@example.com", added.AddNote.User.Email)

	var data struct {
		UserByID userJSON `json:"userById"`
	}
	errs = execute(t, schema, `query($id: ID!) { userById(id: $id) { notes { id title } todos { id } } }`,
		map[string]interface{}{"id": user.ID}, &data)
	require.Empty(t, errs)
	require.Len(t, data.UserByID.Notes, 1)
	assert.Equal(t, added.AddNote.ID, data.UserByID.Notes[0].ID)
	assert.NotNil(t, data.UserByID.Todos)
	assert.Empty(t, data.UserByID.Todos)
}

func TestNoteWithDanglingUser(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))

	var data struct {
		AddNote *noteJSON `json:"addNote"`
	}
	errs := execute(t, schema, `mutation {
		addNote(title: "orphan", description: "no owner", userID: "nobody") { id user { id } }
	}`, nil, &data)
	require.Empty(t, errs)
	require.NotNil(t, data.AddNote)
	assert.NotEmpty(t, data.AddNote.ID)
	assert.Nil(t, data.AddNote.User)
}

func TestTodosByDay(t *testing.T) {
	s := newTestStore(t)
	schema := newTestSchema(t, s)
	ctx := context.Background()

	day := func(h, m, sec, ns int) time.Time { return time.Date(2024, 3, 15, h, m, sec, ns, time.UTC) }
	fixtures := map[string]time.Time{
		"midnight":  day(0, 0, 0, 0),
		"morning":   day(8, 0, 0, 0),
		"evening":   day(20, 30, 0, 0),
		"boundary":  day(23, 59, 59, 0),
		"last half": day(23, 59, 59, 500_000_000),
		"yesterday": time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC),
		"tomorrow":  time.Date(2024, 3, 16, 0, 0, 1, 0, time.UTC),
	}
	for title, at := range fixtures {
		_, err := s.Todos().Create(ctx, &models.Todo{Title: title, ForDate: at, UserID: "u1"})
		require.NoError(t, err)
	}

	var data struct {
		TodosByDay []todoJSON `json:"todosByDay"`
	}
	errs := execute(t, schema, `{ todosByDay(forDate: "2024-03-15") { title forDate } }`, nil, &data)
	require.Empty(t, errs)

	var titles []string
	for _, todo := range data.TodosByDay {
		titles = append(titles, todo.Title)
	}
	assert.Equal(t, []string{"evening", "morning"}, titles)
	assert.Equal(t, "2024-03-15T20:30:00.000Z", data.TodosByDay[0].ForDate)
}

func TestTodosByDay_InvalidDate(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))

	errs := execute(t, schema, `{ todosByDay(forDate: "15/03/2024") { id } }`, nil, nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "invalid date")
}

func TestAddTodo_InvalidDate(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))

	resp := schema.Exec(context.Background(), `mutation {
		addTodo(title: "t", forDate: "2024-01-01", isCompleted: false, userID: "u1") { id }
	}`, "", nil)
	require.Len(t, resp.Errors, 1)
	assert.JSONEq(t, `{"addTodo":null}`, string(resp.Data))
}

func TestUpdateUser_Merges(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))
	user := addUser(t, schema, "ada@example.com")

	var data struct {
		UpdateUser *userJSON `json:"updateUser"`
	}
	errs := execute(t, schema, `mutation($id: ID!) {
		updateUser(id: $id, firstName: "X") { id firstName lastName email password }
	}`, map[string]interface{}{"id": user.ID}, &data)
	require.Empty(t, errs)
	require.NotNil(t, data.UpdateUser)

	want := user
	want.FirstName = "X"
	assert.Equal(t, want, *data.UpdateUser)
}

func TestUpdateNote(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))
	owner := addUser(t, schema, "owner@example.com")

	var added struct {
		AddNote noteJSON `json:"addNote"`
	}
	require.Empty(t, execute(t, schema, `mutation {
		addNote(title: "a", description: "b", userID: "someone") { id }
	}`, nil, &added))

	var data struct {
		UpdateNote *noteJSON `json:"updateNote"`
	}
	errs := execute(t, schema, `mutation($id: ID!, $userID: ID) {
		updateNote(id: $id, userID: $userID) { title description user { email } }
	}`, map[string]interface{}{"id": added.AddNote.ID, "userID": owner.ID}, &data)
	require.Empty(t, errs)
	require.NotNil(t, data.UpdateNote)
	assert.Equal(t, "a", data.UpdateNote.Title)
	assert.Equal(t, "b", data.UpdateNote.Description)
	require.NotNil(t, data.UpdateNote.User)
	assert.Equal(t, "owner@example.com", data.UpdateNote.User.Email)
}

func TestUpdateTodo_ForDate(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))
	todo := addTodo(t, schema, "t", "2024-01-01-09-00-00", "u1")

	tests := []struct {
		name    string
		forDate interface{}
		want    string
	}{
		{name: "rfc3339", forDate: "2024-02-02T10:15:00Z", want: "2024-02-02T10:15:00.000Z"},
		{name: "offset", forDate: "2024-02-02T12:15:00+02:00", want: "2024-02-02T10:15:00.000Z"},
		{name: "unix seconds", forDate: 1704103200, want: "2024-01-01T10:00:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data struct {
				UpdateTodo *todoJSON `json:"updateTodo"`
			}
			errs := execute(t, schema, `mutation($id: ID!, $forDate: DateTime) {
				updateTodo(id: $id, forDate: $forDate, isCompleted: true) { title forDate isCompleted }
			}`, map[string]interface{}{"id": todo.ID, "forDate": tt.forDate}, &data)
			require.Empty(t, errs)
			require.NotNil(t, data.UpdateTodo)
			assert.Equal(t, tt.want, data.UpdateTodo.ForDate)
			assert.Equal(t, "t", data.UpdateTodo.Title)
			assert.True(t, data.UpdateTodo.IsCompleted)
		})
	}
}

func TestUpdate_MissingIsNull(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))

	resp := schema.Exec(context.Background(), `mutation {
		updateUser(id: "missing", firstName: "X") { id }
		updateNote(id: "missing", title: "X") { id }
		updateTodo(id: "missing", title: "X") { id }
	}`, "", nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"updateUser":null,"updateNote":null,"updateTodo":null}`, string(resp.Data))
}

func TestDelete(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))
	user := addUser(t, schema, "ada@example.com")
	todo := addTodo(t, schema, "t", "2024-01-01-09-00-00", user.ID)

	var data struct {
		DeleteUser *userJSON `json:"deleteUser"`
	}
	require.Empty(t, execute(t, schema, `mutation($id: ID!) { deleteUser(id: $id) { id email } }`,
		map[string]interface{}{"id": user.ID}, &data))
	require.NotNil(t, data.DeleteUser)
	assert.Equal(t, user.ID, data.DeleteUser.ID)

	// No cascade: the todo survives and its owner now resolves to null.
	var after struct {
		TodoByID *todoJSON `json:"todoById"`
	}
	require.Empty(t, execute(t, schema, `query($id: ID!) { todoById(id: $id) { id user { id } } }`,
		map[string]interface{}{"id": todo.ID}, &after))
	require.NotNil(t, after.TodoByID)
	assert.Nil(t, after.TodoByID.User)

	resp := schema.Exec(context.Background(), `mutation($id: ID!) {
		deleteUser(id: $id) { id }
		deleteNote(id: "missing") { id }
		deleteTodo(id: "missing") { id }
	}`, "", map[string]interface{}{"id": user.ID})
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"deleteUser":null,"deleteNote":null,"deleteTodo":null}`, string(resp.Data))
}

func TestEndToEnd_TodoForDay(t *testing.T) {
	schema := newTestSchema(t, newTestStore(t))
	user := addUser(t, schema, "e2e@example.com")
	todo := addTodo(t, schema, "standup", "2024-01-01-09-00-00", user.ID)
	assert.Equal(t, "2024-01-01T09:00:00.000Z", todo.ForDate)

	var data struct {
		TodosByDay []todoJSON `json:"todosByDay"`
	}
	errs := execute(t, schema, `{ todosByDay(forDate: "2024-01-01") { id title user { email } } }`, nil, &data)
	require.Empty(t, errs)
	require.Len(t, data.TodosByDay, 1)
	assert.Equal(t, todo.ID, data.TodosByDay[0].ID)
	require.NotNil(t, data.TodosByDay[0].User)
	assert.Equal(t, "e2e@example.com", data.TodosByDay[0].User.Email)
}

// invalidIDStore rejects every id the way the mongo backend rejects
// non-ObjectID strings.
type invalidIDStore struct {
	store.Store
}

func (s invalidIDStore) Users() store.UserRepository { return invalidIDUsers{s.Store.Users()} }

type invalidIDUsers struct {
	store.UserRepository
}

func (invalidIDUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	return nil, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
}

func TestMalformedID(t *testing.T) {
	base := newTestStore(t)
	schema := newTestSchema(t, invalidIDStore{base})

	_, err := base.Notes().Create(context.Background(), &models.Note{Title: "t", Description: "d", UserID: "bad"})
	require.NoError(t, err)

	t.Run("top level lookup is an error", func(t *testing.T) {
		resp := schema.Exec(context.Background(), `{ userById(id: "bad") { id } }`, "", nil)
		require.Len(t, resp.Errors, 1)
		assert.Contains(t, resp.Errors[0].Message, "invalid id")
		assert.Equal(t, []interface{}{"userById"}, resp.Errors[0].Path)
	})

	t.Run("owner reference is null", func(t *testing.T) {
		resp := schema.Exec(context.Background(), `{ notes { title user { id } } }`, "", nil)
		require.Empty(t, resp.Errors)
		assert.JSONEq(t, `{"notes":[{"title":"t","user":null}]}`, string(resp.Data))
	})
}

// brokenStore fails user listing with a backend error.
type brokenStore struct {
	store.Store
}

func (s brokenStore) Users() store.UserRepository { return brokenUsers{s.Store.Users()} }

type brokenUsers struct {
	store.UserRepository
}

func (brokenUsers) FindAll(context.Context) ([]models.User, error) {
	return nil, errors.New("connection reset")
}

func TestStoreErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	schema, err := NewSchema(invalidIDStore{brokenStore{newTestStore(t)}}, zap.New(core))
	require.NoError(t, err)

	t.Run("backend failure is returned and logged", func(t *testing.T) {
		resp := schema.Exec(context.Background(), `{ users { id } }`, "", nil)
		require.Len(t, resp.Errors, 1)
		assert.Contains(t, resp.Errors[0].Message, "connection reset")

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "store call failed", entries[0].Message)
		assert.Equal(t, "users", entries[0].ContextMap()["op"])
	})

	t.Run("missing document is null and not logged", func(t *testing.T) {
		resp := schema.Exec(context.Background(), `mutation { deleteNote(id: "42") { id } }`, "", nil)
		require.Empty(t, resp.Errors)
		assert.JSONEq(t, `{"deleteNote":null}`, string(resp.Data))
		assert.Zero(t, logs.Len())
	})

	t.Run("malformed id is returned but not logged", func(t *testing.T) {
		resp := schema.Exec(context.Background(), `{ userById(id: "bad") { id } }`, "", nil)
		require.Len(t, resp.Errors, 1)
		assert.Zero(t, logs.Len())
	})
}
