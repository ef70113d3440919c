package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tomlord1122/task-manager/internal/domain"
)

// UserRepository defines the persistence operations for users
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByIDWithTasks(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	return translate("create user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate("find user", err)
	}
	return &user, nil
}

// FindByIDWithTasks also loads the user's tasks, oldest first.
func (r *gormUserRepository) FindByIDWithTasks(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&user, id).Error
	if err != nil {
		return nil, translate("find user", err)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate("find user by email", err)
	}
	return &user, nil
}

func (r *gormUserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, translate("list users", err)
	}
	return users, nil
}

// Update persists the user's mutable columns. Tasks are never touched.
func (r *gormUserRepository) Update(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).
		Model(user).
		Select("name", "password_hash", "active").
		Updates(user)
	if result.Error != nil {
		return translate("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update user: %w", ErrRecordNotFound)
	}
	return nil
}

// Delete removes the user; their tasks go with them through the foreign key.
func (r *gormUserRepository) Delete(ctx context.Context, id uint) error {
	return translate("delete user", r.db.WithContext(ctx).Delete(&domain.User{}, id).Error)
}
