package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/ecommerce/pkg/auth"
	"github.com/shashiranjanraj/ecommerce/pkg/response"
)

type userIDKey struct{}
type roleKey struct{}

// Auth validates the Bearer token and stores the authenticated user's ID
// and role in the request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		ctx = context.WithValue(ctx, roleKey{}, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromCtx returns the authenticated user's ID, or 0 when the request
// was not authenticated.
func UserIDFromCtx(ctx context.Context) uint {
	if id, ok := ctx.Value(userIDKey{}).(uint); ok {
		return id
	}
	return 0
}

// RoleFromCtx returns the authenticated user's role, or "" when absent.
func RoleFromCtx(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey{}).(string); ok {
		return role
	}
	return ""
}
