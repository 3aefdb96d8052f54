package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "courze/pkg/domain"
	"courze/pkg/requestcontext"
)

// TokenVerifier validates a bearer token and resolves the principal it
// names. Implemented by internal/jwtauth.
type TokenVerifier interface {
	Verify(tokenString string) (id.UserID, error)
}

// RequireAuth resolves the Bearer token into a principal and stores it in
// the request context. Requests without a valid token are rejected; handlers
// downstream can rely on requestcontext.UserID being set.
func RequireAuth(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok || token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(ctx, "rejected invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(ctx, userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
