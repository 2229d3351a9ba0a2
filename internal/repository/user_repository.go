package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/stockx/stockx-backend/internal/apperrors"
	"github.com/stockx/stockx-backend/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// InsertUser creates a new user row. Returns apperrors.ErrEmailTaken when
// the email unique constraint is violated.
func (s *UserRepository) InsertUser(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO user (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.CreatedAt.UTC().Format(TimeFormat),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by email address.
func (s *UserRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM user
		WHERE email = ?
	`

	return s.queryUser(ctx, query, email)
}

// GetUserByID retrieves a user by ID.
func (s *UserRepository) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM user
		WHERE id = ?
	`

	return s.queryUser(ctx, query, userID)
}

func (s *UserRepository) queryUser(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user row: %w", err)
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return u, nil
}
