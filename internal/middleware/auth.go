package middleware

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/splitconsole/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// MemberKey is the context key for storing the authenticated member name.
const MemberKey contextKey = "member"

// GetMember extracts the member name from the context.
// Returns empty string if not found.
func GetMember(ctx context.Context) string {
	member, _ := ctx.Value(MemberKey).(string)
	return member
}

// WithMember returns a copy of ctx carrying member.
func WithMember(ctx context.Context, member string) context.Context {
	return context.WithValue(ctx, MemberKey, member)
}

// memberFromHeader validates the bearer token in an Authorization header value.
func memberFromHeader(jwtManager *auth.JWTManager, authHeader string) (string, error) {
	if authHeader == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", auth.ErrInvalidToken
	}

	claims, err := jwtManager.Validate(parts[1])
	if err != nil {
		return "", err
	}
	return claims.Member, nil
}

// RequireAuth returns an interceptor that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the member name to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			member, err := memberFromHeader(jwtManager, req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(WithMember(ctx, member), req)
		}
	}
}

// RequireAuthHTTP is the plain HTTP counterpart of RequireAuth, for non-RPC routes.
func RequireAuthHTTP(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			member, err := memberFromHeader(jwtManager, r.Header.Get("Authorization"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithMember(r.Context(), member)))
		})
	}
}
