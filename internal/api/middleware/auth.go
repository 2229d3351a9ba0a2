// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/stockx/stockx-backend/internal/api/response"
	"github.com/stockx/stockx-backend/internal/apperrors"
	"github.com/stockx/stockx-backend/internal/auth"
)

type contextKey string

// userIDKey is the request context key holding the authenticated user ID.
const userIDKey contextKey = "userID"

// Authenticator verifies the bearer session token on protected routes and
// stores the resolved user ID in the request context.
//
// Example usage in router:
//
//	r.Route("/portfolio", func(r chi.Router) {
//	    r.Use(authMiddleware.Authenticate)
//	    r.Get("/", handler.Snapshot)
//	})
type Authenticator struct {
	tokens *auth.TokenManager
}

// NewAuthenticator creates an Authenticator backed by the given token manager.
func NewAuthenticator(tokens *auth.TokenManager) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Authenticate rejects requests without a valid session token.
// Returns 401 Unauthorized when the token is missing, malformed or expired.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrMissingToken.Error(), "")
			return
		}

		userID, ok := a.tokens.Verify(token)
		if !ok {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidToken.Error(), "")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID extracts the authenticated user ID from the request context.
// Returns false when the request did not pass through Authenticate.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID returns a context carrying the given user ID. Intended for
// tests exercising handlers without the full middleware chain.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
