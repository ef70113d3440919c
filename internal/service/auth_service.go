package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Tomlord1122/task-manager/internal/auth"
	"github.com/Tomlord1122/task-manager/internal/logger"
	"github.com/Tomlord1122/task-manager/internal/repository"
)

// AuthService exchanges credentials for a bearer token.
type AuthService interface {
	SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error)
}

type authService struct {
	users  repository.UserRepository
	hasher auth.Hasher
	tokens *auth.TokenManager
	log    logrus.FieldLogger
}

func NewAuthService(users repository.UserRepository, hasher auth.Hasher, tokens *auth.TokenManager, log logrus.FieldLogger) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    logger.Auth(log),
	}
}

// SignIn answers Unauthorized for an unknown email and a wrong password
// alike.
func (s *authService) SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, unauthorized(msgInvalidCredentials)
		}
		s.log.WithError(err).Error("find user by email")
		return nil, badRequest("Authentication fail", err)
	}

	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		s.log.WithField("user_id", user.ID).Info("sign-in rejected: wrong password")
		return nil, unauthorized(msgInvalidCredentials)
	}
	if !user.Active {
		return nil, unauthorized(msgInactiveUser)
	}

	token, _, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Error("issue token")
		return nil, badRequest("Authentication fail", err)
	}

	return &SignInResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}
