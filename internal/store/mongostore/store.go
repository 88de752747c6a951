// Package mongostore implements the store contracts on MongoDB. Documents keep
// the field names of the collections the service has always written:
// users, notes and todos keyed by ObjectID.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jotter-dev/jotter/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase is used when the connection string names no database.
const DefaultDatabase = "test"

const (
	usersCollection = "users"
	notesCollection = "notes"
	todosCollection = "todos"
)

type Store struct {
	db    *mongo.Database
	users *UserRepository
	notes *NoteRepository
	todos *TodoRepository
}

func New(db *mongo.Database) *Store {
	return &Store{
		db:    db,
		users: &UserRepository{collection: db.Collection(usersCollection)},
		notes: &NoteRepository{collection: db.Collection(notesCollection)},
		todos: &TodoRepository{collection: db.Collection(todosCollection)},
	}
}

// Connect dials uri, verifies the deployment answers a ping and returns a
// Store bound to the database named in the connection string.
func Connect(ctx context.Context, uri string) (*Store, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("parse mongo uri: %w", err)
	}

	dbName := cs.Database
	if dbName == "" {
		dbName = DefaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return New(client.Database(dbName)), nil
}

func (s *Store) Users() store.UserRepository { return s.users }
func (s *Store) Notes() store.NoteRepository { return s.notes }
func (s *Store) Todos() store.TodoRepository { return s.todos }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return oid, nil
}

// findOne decodes a single result, mapping an empty result to store.ErrNotFound.
func findOne[T any](res *mongo.SingleResult, what string) (*T, error) {
	var doc T

	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", what, err)
	}

	return &doc, nil
}

// findMany drains a cursor. The returned slice is never nil.
func findMany[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, what string, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}

	return docs, nil
}

func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
