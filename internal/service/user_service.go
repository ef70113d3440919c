package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tomlord1122/task-manager/internal/auth"
	"github.com/Tomlord1122/task-manager/internal/domain"
	"github.com/Tomlord1122/task-manager/internal/logger"
	"github.com/Tomlord1122/task-manager/internal/repository"
)

// UserService defines the operations for managing users. A user may only
// update or delete themselves.
type UserService interface {
	List(ctx context.Context, page Pagination) ([]UserSummary, error)
	GetByID(ctx context.Context, id uint) (*UserDetail, error)
	Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	Update(ctx context.Context, id, subject uint, req UpdateUserRequest) (*UserResponse, error)
	Delete(ctx context.Context, id, subject uint) (*MessageResponse, error)
}

type userService struct {
	repo   repository.UserRepository
	hasher auth.Hasher
	log    logrus.FieldLogger
}

func NewUserService(repo repository.UserRepository, hasher auth.Hasher, log logrus.FieldLogger) UserService {
	return &userService{
		repo:   repo,
		hasher: hasher,
		log:    logger.Service(log, "users"),
	}
}

func (s *userService) List(ctx context.Context, page Pagination) ([]UserSummary, error) {
	page = page.normalized()
	users, err := s.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		s.log.WithError(err).Error("list users")
		return nil, badRequest(msgReadFail, err)
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}
	return summaries, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*UserDetail, error) {
	user, err := s.repo.FindByIDWithTasks(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, notFound()
		}
		s.log.WithError(err).WithField("user_id", id).Error("find user")
		return nil, badRequest(msgReadFail, err)
	}

	return &UserDetail{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Tasks: newTaskResponses(user.Tasks),
	}, nil
}

func (s *userService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log.WithError(err).Error("hash password")
		return nil, badRequest(msgStoreFail, err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		entry := s.log.WithError(err)
		if errors.Is(err, repository.ErrDuplicateKey) {
			entry.Warn("create user: email already registered")
		} else {
			entry.Error("create user")
		}
		return nil, badRequest(msgStoreFail, err)
	}

	resp := newUserResponse(user)
	return &resp, nil
}

// Update replaces the name and, when given, re-hashes the password. The
// email address never changes.
func (s *userService) Update(ctx context.Context, id, subject uint, req UpdateUserRequest) (*UserResponse, error) {
	user, err := authorizeOwner(ctx, s.repo.FindByID, id, subject, msgUpdateFail)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			s.log.WithError(err).WithField("user_id", id).Error("hash password")
			return nil, badRequest(msgUpdateFail, err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, notFound()
		}
		s.log.WithError(err).WithField("user_id", id).Error("update user")
		return nil, badRequest(msgUpdateFail, err)
	}

	resp := newUserResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id, subject uint) (*MessageResponse, error) {
	if _, err := authorizeOwner(ctx, s.repo.FindByID, id, subject, msgDeleteFail); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.WithError(err).WithField("user_id", id).Error("delete user")
		return nil, badRequest(msgDeleteFail, err)
	}
	return &MessageResponse{Message: true}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
