package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/jotter-dev/jotter/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TodoRepository struct {
	collection *mongo.Collection
}

func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	doc := todoDocument{
		ID:          primitive.NewObjectID(),
		Title:       todo.Title,
		ForDate:     todo.ForDate.UTC(),
		IsCompleted: todo.IsCompleted,
		UserID:      todo.UserID,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}

	return doc.model(), nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	doc, err := findOne[todoDocument](r.collection.FindOne(ctx, bson.M{"_id": oid}), "find todo")
	if err != nil {
		return nil, err
	}

	return doc.model(), nil
}

func (r *TodoRepository) FindAll(ctx context.Context) ([]models.Todo, error) {
	return r.find(ctx, bson.M{})
}

func (r *TodoRepository) FindByUserID(ctx context.Context, userID string) ([]models.Todo, error) {
	return r.find(ctx, bson.M{"userID": userID})
}

func (r *TodoRepository) FindBetween(ctx context.Context, after, before time.Time) ([]models.Todo, error) {
	filter := bson.M{"forDate": bson.M{"$gt": after.UTC(), "$lt": before.UTC()}}
	opts := options.Find().SetSort(bson.D{{Key: "forDate", Value: -1}})

	return r.find(ctx, filter, opts)
}

func (r *TodoRepository) Update(ctx context.Context, id string, patch models.TodoPatch) (*models.Todo, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": todoSet(patch)}, afterUpdate())

	doc, err := findOne[todoDocument](res, "update todo")
	if err != nil {
		return nil, err
	}

	return doc.model(), nil
}

func (r *TodoRepository) Delete(ctx context.Context, id string) (*models.Todo, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	doc, err := findOne[todoDocument](r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}), "delete todo")
	if err != nil {
		return nil, err
	}

	return doc.model(), nil
}

func (r *TodoRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Todo, error) {
	docs, err := findMany[todoDocument](ctx, r.collection, filter, "find todos", opts...)
	if err != nil {
		return nil, err
	}

	todos := make([]models.Todo, 0, len(docs))
	for i := range docs {
		todos = append(todos, *docs[i].model())
	}

	return todos, nil
}
