package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"favorites-service/pkg/auth"
)

type contextKey string

// PrincipalKey carries the authenticated principal in the request context
const PrincipalKey contextKey = "principal"

// PrincipalFromContext extracts the authenticated principal from the context
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(auth.Principal)
	return principal, ok
}

// Auth validates the JWT bearer token and injects the principal into the
// request context
func Auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalKey, auth.Principal{
			ID:        claims.UserID,
			Username:  claims.Username,
			Superuser: claims.Superuser,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// Superuser requires an authenticated superuser principal
func Superuser(next http.HandlerFunc) http.HandlerFunc {
	return Auth(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok || !principal.Superuser {
			respondError(w, http.StatusForbidden, "Superuser access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
