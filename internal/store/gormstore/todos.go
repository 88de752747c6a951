package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jotter-dev/jotter/internal/models"
	"github.com/jotter-dev/jotter/internal/store"
	"gorm.io/gorm"
)

type TodoRepository struct {
	db *gorm.DB
}

func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	newTodo := *todo
	newTodo.ID = uuid.NewString()
	newTodo.ForDate = newTodo.ForDate.UTC()

	if err := r.db.WithContext(ctx).Create(&newTodo).Error; err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	return &newTodo, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	var todo models.Todo

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}

	todo.ForDate = todo.ForDate.UTC()
	return &todo, nil
}

func (r *TodoRepository) FindAll(ctx context.Context) ([]models.Todo, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *TodoRepository) FindByUserID(ctx context.Context, userID string) ([]models.Todo, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *TodoRepository) FindBetween(ctx context.Context, after, before time.Time) ([]models.Todo, error) {
	q := r.db.WithContext(ctx).
		Where("for_date > ? AND for_date < ?", after.UTC(), before.UTC()).
		Order("for_date desc")

	return r.find(q)
}

func (r *TodoRepository) Update(ctx context.Context, id string, patch models.TodoPatch) (*models.Todo, error) {
	todo, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return todo, nil
	}

	updates := make(map[string]interface{})

	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.ForDate != nil {
		updates["for_date"] = patch.ForDate.UTC()
	}
	if patch.IsCompleted != nil {
		updates["is_completed"] = *patch.IsCompleted
	}
	if patch.UserID != nil {
		updates["user_id"] = *patch.UserID
	}

	if err := r.db.WithContext(ctx).Model(&models.Todo{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *TodoRepository) Delete(ctx context.Context, id string) (*models.Todo, error) {
	todo, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&models.Todo{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete todo: %w", err)
	}

	return todo, nil
}

func (r *TodoRepository) find(q *gorm.DB) ([]models.Todo, error) {
	todos := []models.Todo{}

	if err := q.Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}

	for i := range todos {
		todos[i].ForDate = todos[i].ForDate.UTC()
	}

	return todos, nil
}
