package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"challenge_league_api/internal/model"
	"challenge_league_api/internal/repository"
	"challenge_league_api/pkg/auth"
	"challenge_league_api/pkg/logger"

	"go.uber.org/zap"
)

type UserService struct {
	repo   UserRepository
	tokens TokenIssuer
}

func NewUserService(repo UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
	}
}

// RegisterUser stores the user with a bcrypt hash of the password; the plaintext is never persisted.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*model.LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	err = auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(user.UserID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &model.LoginResult{
		UserID:      user.UserID,
		Email:       user.Email,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout only checks the user exists: access tokens are stateless and expire on their own.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	_, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	logger.Logger().Info("user logged out", zap.Int64("user_id", userID))
	return nil
}
