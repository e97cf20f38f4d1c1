package infra

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/config"
)

// AuthInterceptorHTTP takes the caller identity set by the platform
// gateway and exposes it to handlers via the request context.
// Authentication itself happens upstream.
func AuthInterceptorHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-Uuid")
		if userID == "" {
			http.Error(w, "missing user uuid", http.StatusUnauthorized)
			return
		}

		if _, err := uuid.Parse(userID); err != nil {
			http.Error(w, "invalid user uuid", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), config.KeyUUID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
