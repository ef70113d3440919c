package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Tomlord1122/task-manager/internal/domain"
	"github.com/Tomlord1122/task-manager/internal/logger"
	"github.com/Tomlord1122/task-manager/internal/repository"
)

// TaskService defines the operations for managing tasks. Writes are only
// allowed to the task's owner; single reads are not owner-scoped.
type TaskService interface {
	// ListForOwner returns the subject's tasks, oldest first.
	ListForOwner(ctx context.Context, subject uint, page Pagination) ([]TaskResponse, error)

	// GetByID returns any task by id, whoever owns it.
	GetByID(ctx context.Context, id uint) (*TaskResponse, error)

	// ListForOwnerByCompletion treats any non-zero flag as completed.
	ListForOwnerByCompletion(ctx context.Context, subject uint, completedFlag int) ([]TaskResponse, error)

	Create(ctx context.Context, subject uint, req CreateTaskRequest) (*TaskResponse, error)
	Update(ctx context.Context, id, subject uint, req UpdateTaskRequest) (*TaskResponse, error)
	Delete(ctx context.Context, id, subject uint) (*MessageResponse, error)
}

type taskService struct {
	repo repository.TaskRepository
	log  logrus.FieldLogger
}

func NewTaskService(repo repository.TaskRepository, log logrus.FieldLogger) TaskService {
	return &taskService{
		repo: repo,
		log:  logger.Service(log, "tasks"),
	}
}

func (s *taskService) ListForOwner(ctx context.Context, subject uint, page Pagination) ([]TaskResponse, error) {
	page = page.normalized()
	tasks, err := s.repo.ListByOwner(ctx, subject, page.Limit, page.Offset)
	if err != nil {
		s.log.WithError(err).WithField("user_id", subject).Error("list tasks")
		return nil, badRequest(msgReadFail, err)
	}
	return newTaskResponses(tasks), nil
}

func (s *taskService) GetByID(ctx context.Context, id uint) (*TaskResponse, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, notFound()
		}
		s.log.WithError(err).WithField("task_id", id).Error("find task")
		return nil, badRequest(msgReadFail, err)
	}
	resp := newTaskResponse(task)
	return &resp, nil
}

func (s *taskService) ListForOwnerByCompletion(ctx context.Context, subject uint, completedFlag int) ([]TaskResponse, error) {
	tasks, err := s.repo.ListByOwnerAndCompletion(ctx, subject, completedFlag != 0)
	if err != nil {
		s.log.WithError(err).WithField("user_id", subject).Error("filter tasks")
		return nil, badRequest(msgReadFail, err)
	}
	return newTaskResponses(tasks), nil
}

func (s *taskService) Create(ctx context.Context, subject uint, req CreateTaskRequest) (*TaskResponse, error) {
	task := &domain.Task{
		Name:        req.Name,
		Description: req.Description,
		Completed:   false,
		UserID:      subject,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.log.WithError(err).WithField("user_id", subject).Error("create task")
		return nil, badRequest(msgStoreFail, err)
	}

	resp := newTaskResponse(task)
	return &resp, nil
}

func (s *taskService) Update(ctx context.Context, id, subject uint, req UpdateTaskRequest) (*TaskResponse, error) {
	task, err := authorizeOwner(ctx, s.repo.FindByID, id, subject, msgUpdateFail)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := s.repo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, notFound()
		}
		s.log.WithError(err).WithField("task_id", id).Error("update task")
		return nil, badRequest(msgUpdateFail, err)
	}

	resp := newTaskResponse(task)
	return &resp, nil
}

func (s *taskService) Delete(ctx context.Context, id, subject uint) (*MessageResponse, error) {
	if _, err := authorizeOwner(ctx, s.repo.FindByID, id, subject, msgDeleteFail); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.WithError(err).WithField("task_id", id).Error("delete task")
		return nil, badRequest(msgDeleteFail, err)
	}
	return &MessageResponse{Message: true}, nil
}
