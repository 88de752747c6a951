package mongostore

import (
	"context"
	"fmt"

	"github.com/jotter-dev/jotter/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type NoteRepository struct {
	collection *mongo.Collection
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	doc := noteDocument{
		ID:          primitive.NewObjectID(),
		Title:       note.Title,
		Description: note.Description,
		UserID:      note.UserID,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	return doc.model(), nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*models.Note, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	doc, err := findOne[noteDocument](r.collection.FindOne(ctx, bson.M{"_id": oid}), "find note")
	if err != nil {
		return nil, err
	}

	return doc.model(), nil
}

func (r *NoteRepository) FindAll(ctx context.Context) ([]models.Note, error) {
	return r.find(ctx, bson.M{})
}

func (r *NoteRepository) FindByUserID(ctx context.Context, userID string) ([]models.Note, error) {
	return r.find(ctx, bson.M{"userID": userID})
}

func (r *NoteRepository) Update(ctx context.Context, id string, patch models.NotePatch) (*models.Note, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": noteSet(patch)}, afterUpdate())

	doc, err := findOne[noteDocument](res, "update note")
	if err != nil {
		return nil, err
	}

	return doc.model(), nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) (*models.Note, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	doc, err := findOne[noteDocument](r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}), "delete note")
	if err != nil {
		return nil, err
	}

	return doc.model(), nil
}

func (r *NoteRepository) find(ctx context.Context, filter bson.M) ([]models.Note, error) {
	docs, err := findMany[noteDocument](ctx, r.collection, filter, "find notes")
	if err != nil {
		return nil, err
	}

	notes := make([]models.Note, 0, len(docs))
	for i := range docs {
		notes = append(notes, *docs[i].model())
	}

	return notes, nil
}
