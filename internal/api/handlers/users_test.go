package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockx/stockx-backend/internal/api/handlers"
	"github.com/stockx/stockx-backend/internal/api/request"
	"github.com/stockx/stockx-backend/internal/testutil"
)

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestRegisterEndpoint tests account creation over HTTP.
func TestRegisterEndpoint(t *testing.T) {
	t.Run("creates account and hides the password hash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewUserHandler(testutil.NewTestUserService(t, db))

		req := jsonRequest(t, http.MethodPost, "/api/users/register", request.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.org",
			Password: "correct-horse",
		})
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Status = %d, want 201. Body: %s", rec.Code, rec.Body.String())
		}

		var user handlers.UserResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if user.Username != "alice" || user.ID == "" {
			t.Errorf("UserResponse = %+v, want alice with an ID", user)
		}
		if user.AvatarURL == "" {
			t.Errorf("Expected a gravatar URL")
		}
		if bytes.Contains(rec.Body.Bytes(), []byte("password")) {
			t.Errorf("Response leaks password material: %s", rec.Body.String())
		}
	})

	t.Run("rejects weak payloads", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewUserHandler(testutil.NewTestUserService(t, db))

		req := jsonRequest(t, http.MethodPost, "/api/users/register", request.RegisterRequest{
			Username: "alice",
			Email:    "not-an-email",
			Password: "short",
		})
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Status = %d, want 400. Body: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns conflict for a taken email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewUserHandler(testutil.NewTestUserService(t, db))

		payload := request.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.org",
			Password: "correct-horse",
		}

		rec := httptest.NewRecorder()
		handler.Register(rec, jsonRequest(t, http.MethodPost, "/api/users/register", payload))
		if rec.Code != http.StatusCreated {
			t.Fatalf("First register status = %d, want 201", rec.Code)
		}

		rec = httptest.NewRecorder()
		handler.Register(rec, jsonRequest(t, http.MethodPost, "/api/users/register", payload))
		if rec.Code != http.StatusConflict {
			t.Fatalf("Second register status = %d, want 409. Body: %s", rec.Code, rec.Body.String())
		}
	})
}

// TestLoginEndpoint tests credential exchange over HTTP.
func TestLoginEndpoint(t *testing.T) {
	register := func(t *testing.T, handler *handlers.UserHandler) {
		t.Helper()
		rec := httptest.NewRecorder()
		handler.Register(rec, jsonRequest(t, http.MethodPost, "/api/users/register", request.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.org",
			Password: "correct-horse",
		}))
		if rec.Code != http.StatusCreated {
			t.Fatalf("Register status = %d, want 201", rec.Code)
		}
	}

	t.Run("returns token and user for valid credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewUserHandler(testutil.NewTestUserService(t, db))
		register(t, handler)

		rec := httptest.NewRecorder()
		handler.Login(rec, jsonRequest(t, http.MethodPost, "/api/users/login", request.LoginRequest{
			Email:    "alice@example.org",
			Password: "correct-horse",
		}))

		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200. Body: %s", rec.Code, rec.Body.String())
		}

		var login handlers.LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if login.Token == "" {
			t.Errorf("Expected a session token")
		}
		if login.User.Email != "alice@example.org" {
			t.Errorf("User = %+v, want alice@example.org", login.User)
		}
	})

	t.Run("returns unauthorized for bad credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewUserHandler(testutil.NewTestUserService(t, db))
		register(t, handler)

		rec := httptest.NewRecorder()
		handler.Login(rec, jsonRequest(t, http.MethodPost, "/api/users/login", request.LoginRequest{
			Email:    "alice@example.org",
			Password: "wrong-horse",
		}))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("Status = %d, want 401. Body: %s", rec.Code, rec.Body.String())
		}
	})
}

// TestMeEndpoint tests authenticated account retrieval.
func TestMeEndpoint(t *testing.T) {
	t.Run("returns the authenticated account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateUser(t, db)
		handler := handlers.NewUserHandler(testutil.NewTestUserService(t, db))

		req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/users/me", user.ID)
		rec := httptest.NewRecorder()
		handler.Me(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200. Body: %s", rec.Code, rec.Body.String())
		}

		var got handlers.UserResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("ID = %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("returns unauthorized without auth context", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewUserHandler(testutil.NewTestUserService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		rec := httptest.NewRecorder()
		handler.Me(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("Status = %d, want 401. Body: %s", rec.Code, rec.Body.String())
		}
	})
}
