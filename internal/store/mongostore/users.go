package mongostore

import (
	"context"
	"fmt"

	"github.com/jotter-dev/jotter/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	collection *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Password:  user.Password,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return doc.model(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	doc, err := findOne[userDocument](r.collection.FindOne(ctx, bson.M{"_id": oid}), "find user")
	if err != nil {
		return nil, err
	}

	return doc.model(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	doc, err := findOne[userDocument](r.collection.FindOne(ctx, bson.M{"email": email}), "find user by email")
	if err != nil {
		return nil, err
	}

	return doc.model(), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	docs, err := findMany[userDocument](ctx, r.collection, bson.M{}, "find users")
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(docs))
	for i := range docs {
		users = append(users, *docs[i].model())
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": userSet(patch)}, afterUpdate())

	doc, err := findOne[userDocument](res, "update user")
	if err != nil {
		return nil, err
	}

	return doc.model(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	doc, err := findOne[userDocument](r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}), "delete user")
	if err != nil {
		return nil, err
	}

	return doc.model(), nil
}
