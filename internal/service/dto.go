package service

import (
	"time"

	"github.com/Tomlord1122/task-manager/internal/domain"
)

const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// Pagination is a raw offset/limit window. Zero values mean the defaults.
type Pagination struct {
	Limit  int `json:"limit" validate:"gte=0"`
	Offset int `json:"offset" validate:"gte=0"`
}

func (p Pagination) normalized() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = DefaultOffset
	}
	return p
}

// CreateTaskRequest holds the data needed to create a new task. Completed is
// accepted because web clients send the whole form, but a new task always
// starts out not completed.
type CreateTaskRequest struct {
	Name        string `json:"name" validate:"required,min=5,max=255"`
	Description string `json:"description" validate:"required,min=5,max=255"`
	Completed   *bool  `json:"completed"`
}

// UpdateTaskRequest holds the fields to replace. Pointers distinguish an
// omitted field from its zero value.
type UpdateTaskRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=5,max=255"`
	Description *string `json:"description" validate:"omitempty,min=5,max=255"`
	Completed   *bool   `json:"completed"`
}

// TaskResponse is the representation of a Task returned to callers.
type TaskResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
	UserID      uint   `json:"userId"`
}

// CreateUserRequest carries the raw password in the passwordHash field; the
// name is kept for client compatibility.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"passwordHash" validate:"required,min=6,max=72"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Password *string `json:"passwordHash" validate:"omitempty,min=6,max=72"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

type UserDetail struct {
	ID    uint           `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Tasks []TaskResponse `json:"tasks"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignInResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// MessageResponse acknowledges a delete.
type MessageResponse struct {
	Message bool `json:"message"`
}

func newTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UserID:      t.UserID,
	}
}

func newTaskResponses(tasks []domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, newTaskResponse(&tasks[i]))
	}
	return responses
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
