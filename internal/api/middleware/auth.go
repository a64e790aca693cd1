package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/arcadely/arcade/internal/api/apierr"
	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/services/auth"
	"github.com/arcadely/arcade/internal/storage"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// Auth creates authentication middleware. It validates the bearer token and
// loads the current account record into the request context.
func Auth(authService *auth.Service, store storage.Storage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			username, err := authService.Authenticate(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			user, err := store.GetUser(r.Context(), username)
			if err != nil {
				// The token may outlive the account
				apierr.WriteError(w, auth.ErrInvalidToken)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, userContextKey, user)
			ctx = context.WithValue(ctx, tokenContextKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetUser returns the authenticated user from the request context, or nil
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// MustGetUser returns the authenticated user or panics.
// Only call from handlers behind the Auth middleware.
func MustGetUser(ctx context.Context) *model.User {
	user := GetUser(ctx)
	if user == nil {
		panic("no authenticated user in context")
	}
	return user
}

// GetToken returns the bearer token from the request context
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}
