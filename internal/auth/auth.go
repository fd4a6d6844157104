// Package auth resolves the authenticated caller for each request. Session
// issuance and OAuth flows live outside this service; all it consumes is a
// bearer token that an Authorizer maps to a user identity.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrMissingToken is returned when no bearer token is present.
	ErrMissingToken = errors.New("missing Authorization header")

	// ErrInvalidToken is returned when the token does not resolve to a user.
	ErrInvalidToken = errors.New("invalid token")
)

// UserInfo identifies an authenticated caller.
type UserInfo struct {
	UserID string `json:"userId"`
}

// Authorizer validates a bearer token and resolves it to a user.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*UserInfo, error)
}

// ExtractBearerToken extracts the token from the Authorization header.
// Expects "Bearer <token>" format.
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid Authorization header format, expected 'Bearer <token>'")
	}
	return parts[1], nil
}

type contextKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u *UserInfo) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// UserFromContext returns the authenticated user stored by the middleware.
func UserFromContext(ctx context.Context) (*UserInfo, bool) {
	u, ok := ctx.Value(contextKey{}).(*UserInfo)
	return u, ok
}

// Middleware authenticates every request through the authorizer and stores
// the resolved user on the request context.
func Middleware(a Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractBearerToken(r)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			u, err := a.Authorize(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}
