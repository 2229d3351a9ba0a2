package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockx/stockx-backend/internal/apperrors"
	"github.com/stockx/stockx-backend/internal/api/request"
	"github.com/stockx/stockx-backend/internal/auth"
	"github.com/stockx/stockx-backend/internal/model"
	"github.com/stockx/stockx-backend/internal/repository"
)

// UserService handles account registration and login.
type UserService struct {
	userRepo *repository.UserRepository
	tokens   *auth.TokenManager
}

// NewUserService creates a new UserService with the provided repository and
// token manager dependencies.
func NewUserService(userRepo *repository.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req request.RegisterRequest) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.InsertUser(ctx, &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// Login verifies credentials and mints a session token for the user.
// A missing account and a wrong password produce the same error so the
// response does not leak which emails are registered.
func (s *UserService) Login(ctx context.Context, req request.LoginRequest) (string, model.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", model.User{}, apperrors.ErrInvalidCredentials
		}
		return "", model.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", model.User{}, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(user.ID)
	if err != nil {
		return "", model.User{}, err
	}

	return token, user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (model.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}
