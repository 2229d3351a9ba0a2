package validation

import (
	"net/mail"
	"strings"

	"github.com/stockx/stockx-backend/internal/api/request"
)

// ValidateRegister validates an account registration request.
//
// Required fields:
//   - username: 1-15 characters after trimming
//   - email: must parse as an address
//   - password: at least 8 characters
func ValidateRegister(req request.RegisterRequest) error {
	errors := make(map[string]string)

	username := strings.TrimSpace(req.Username)
	if username == "" {
		errors["username"] = "username is required"
	} else if len(username) > 15 {
		errors["username"] = "username must be at most 15 characters"
	}

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errors["email"] = "invalid email address"
	}

	if len(req.Password) < 8 {
		errors["password"] = "password must be at least 8 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateLogin validates a login request.
func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	}
	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
