package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"societydesk/models"
	"societydesk/utils"
)

// ContextPrincipal is the request-context key under which the
// authenticated principal is stored.
const ContextPrincipal = "principal"

// AuthMiddleware validates the bearer credential and exposes the asserted
// {id, name, phone, role} principal to handlers.
type AuthMiddleware struct {
	jwtSecret []byte
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: []byte(jwtSecret)}
}

// RequireAuth rejects requests without a valid, unexpired credential and
// sets the principal in the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Unauthenticated", "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondWithError(w, http.StatusUnauthorized, "Unauthenticated", "Invalid authorization format. Expected: Bearer <token>")
			return
		}

		principal, err := utils.ParseJWT(parts[1], m.jwtSecret)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthenticated", "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ContextPrincipal, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole wraps RequireAuth and additionally rejects principals whose
// role is not the given one.
func (m *AuthMiddleware) RequireRole(role models.Role, next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := PrincipalFromContext(r)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthenticated", "Principal not found in context")
			return
		}
		if models.Role(principal.Role) != role {
			respondWithError(w, http.StatusForbidden, "Forbidden", fmt.Sprintf("This operation requires the %s role", role))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// PrincipalFromContext extracts the authenticated principal set by
// RequireAuth.
func PrincipalFromContext(r *http.Request) (*models.PrincipalInfo, error) {
	val := r.Context().Value(ContextPrincipal)
	if val == nil {
		return nil, fmt.Errorf("principal not found in context - authentication required")
	}
	principal, ok := val.(*models.PrincipalInfo)
	if !ok {
		return nil, fmt.Errorf("invalid principal type in context")
	}
	return principal, nil
}

// Helper function for error responses
func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	body := fmt.Sprintf(`{"error":"%s","message":"%s","code":%d}`, errorType, message, statusCode)
	w.Write([]byte(body))
}
