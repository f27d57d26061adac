package handlers

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/auth"
	"storefront/internal/models"
)

type ctxKey int

const claimsKey ctxKey = iota

// ClaimsFrom returns the verified token claims RequireAuth stored on the
// request context.
func ClaimsFrom(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// RequireAuth gates a route on a valid bearer token.
func RequireAuth(verify func(token string) (auth.Claims, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, models.ErrUnauthorized)
				return
			}
			claims, err := verify(token)
			if err != nil {
				writeError(w, models.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
