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

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	newUser := *user
	newUser.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(&newUser).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &newUser, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return user, nil
	}

	updates := make(map[string]interface{})

	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Password != nil {
		updates["password"] = *patch.Password
	}

	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) first(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}
