// Package middleware provides net/http helpers for services that front a
// [goSession.Engine]. Only stateless checks live here: access credentials are
// verified by signature and expiry alone, with no store round-trip.
package middleware

import (
	"net/http"
	"strings"

	goSession "github.com/Kade-Lor/goSession"
)

// RequireAccess returns middleware that rejects requests without a valid
// bearer access credential and injects the verified claims into the request
// context for downstream handlers (see [goSession.AccessClaimsFromContext]).
func RequireAccess(engine *goSession.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := engine.ParseAccess(token)
			if err != nil {
				// Expired and malformed are deliberately indistinguishable here.
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := goSession.WithAccessClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
