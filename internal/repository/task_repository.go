package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tomlord1122/task-manager/internal/domain"
)

// TaskRepository defines the persistence operations for tasks
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uint) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]domain.Task, error)
	ListByOwnerAndCompletion(ctx context.Context, ownerID uint, completed bool) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uint) error
}

type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a TaskRepository backed by GORM
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return translate("create task", r.db.WithContext(ctx).Create(task).Error)
}

// FindByID returns ErrRecordNotFound when no task has the id.
func (r *gormTaskRepository) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, translate("find task", err)
	}
	return &task, nil
}

// ListByOwner pages through the owner's tasks, oldest first.
func (r *gormTaskRepository) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, translate("list tasks", err)
	}
	return tasks, nil
}

func (r *gormTaskRepository) ListByOwnerAndCompletion(ctx context.Context, ownerID uint, completed bool) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed = ?", ownerID, completed).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, translate("filter tasks", err)
	}
	return tasks, nil
}

// Update writes the mutable columns of task, zero values included. It
// returns ErrRecordNotFound when the row no longer exists.
func (r *gormTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	result := r.db.WithContext(ctx).
		Model(task).
		Select("name", "description", "completed").
		Updates(task)
	if result.Error != nil {
		return translate("update task", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update task: %w", ErrRecordNotFound)
	}
	return nil
}

// Delete removes the row permanently.
func (r *gormTaskRepository) Delete(ctx context.Context, id uint) error {
	return translate("delete task", r.db.WithContext(ctx).Delete(&domain.Task{}, id).Error)
}
