package handlers

import (
	"errors"
	"net/http"

	"github.com/stockx/stockx-backend/internal/api/middleware"
	"github.com/stockx/stockx-backend/internal/api/request"
	"github.com/stockx/stockx-backend/internal/api/response"
	"github.com/stockx/stockx-backend/internal/apperrors"
	"github.com/stockx/stockx-backend/internal/model"
	"github.com/stockx/stockx-backend/internal/service"
	"github.com/stockx/stockx-backend/internal/validation"
)

// UserHandler handles HTTP requests for account endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler with the provided service dependency.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UserResponse is the public shape of a user account.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}

func newUserResponse(user model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		AvatarURL: user.AvatarURL(128),
	}
}

// Register handles POST requests to create a new account.
//
// Endpoint: POST /api/users/register
// Request Body: RegisterRequest (username, email, password)
// Response: 201 Created with UserResponse
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the email is already registered
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RegisterRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegister(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrEmailTaken.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to register user", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, newUserResponse(user))
}

// LoginResponse carries the minted session token together with the account.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Login handles POST requests to authenticate and obtain a session token.
//
// Endpoint: POST /api/users/login
// Request Body: LoginRequest (email, password)
// Response: 200 OK with LoginResponse
// Error: 400 Bad Request if validation fails
// Error: 401 Unauthorized if credentials are wrong
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	token, user, err := h.userService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

// Me handles GET requests for the authenticated account.
//
// Endpoint: GET /api/users/me
// Response: 200 OK with UserResponse
// Error: 401 Unauthorized without a valid session token
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrMissingToken.Error(), "")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveUser.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newUserResponse(user))
}
