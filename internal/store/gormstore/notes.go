package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jotter-dev/jotter/internal/models"
	"github.com/jotter-dev/jotter/internal/store"
	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	newNote := *note
	newNote.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(&newNote).Error; err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	return &newNote, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}

	return &note, nil
}

func (r *NoteRepository) FindAll(ctx context.Context) ([]models.Note, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *NoteRepository) FindByUserID(ctx context.Context, userID string) ([]models.Note, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *NoteRepository) Update(ctx context.Context, id string, patch models.NotePatch) (*models.Note, error) {
	note, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return note, nil
	}

	updates := make(map[string]interface{})

	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.UserID != nil {
		updates["user_id"] = *patch.UserID
	}

	if err := r.db.WithContext(ctx).Model(&models.Note{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *NoteRepository) Delete(ctx context.Context, id string) (*models.Note, error) {
	note, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&models.Note{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete note: %w", err)
	}

	return note, nil
}

func (r *NoteRepository) find(q *gorm.DB) ([]models.Note, error) {
	notes := []models.Note{}

	if err := q.Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}

	return notes, nil
}
