package mongostore

import (
	"time"

	"github.com/jotter-dev/jotter/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
}

type noteDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	UserID      string             `bson:"userID"`
}

type todoDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	ForDate     time.Time          `bson:"forDate"`
	IsCompleted bool               `bson:"isCompleted"`
	UserID      string             `bson:"userID"`
}

func (d *userDocument) model() *models.User {
	return &models.User{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Password:  d.Password,
	}
}

func (d *noteDocument) model() *models.Note {
	return &models.Note{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		UserID:      d.UserID,
	}
}

func (d *todoDocument) model() *models.Todo {
	return &models.Todo{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		ForDate:     d.ForDate.UTC(),
		IsCompleted: d.IsCompleted,
		UserID:      d.UserID,
	}
}

func userSet(p models.UserPatch) bson.M {
	set := bson.M{}
	if p.FirstName != nil {
		set["firstName"] = *p.FirstName
	}
	if p.LastName != nil {
		set["lastName"] = *p.LastName
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Password != nil {
		set["password"] = *p.Password
	}
	return set
}

func noteSet(p models.NotePatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.UserID != nil {
		set["userID"] = *p.UserID
	}
	return set
}

func todoSet(p models.TodoPatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.ForDate != nil {
		set["forDate"] = p.ForDate.UTC()
	}
	if p.IsCompleted != nil {
		set["isCompleted"] = *p.IsCompleted
	}
	if p.UserID != nil {
		set["userID"] = *p.UserID
	}
	return set
}
