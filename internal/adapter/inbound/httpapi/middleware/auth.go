package middleware

import (
	"crypto/hmac"
	"net/http"
	"strings"
)

// BearerAuth returns middleware that validates a static Bearer token in the
// Authorization header. The comparison is constant time so the token cannot
// be probed byte by byte.
func BearerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			token := strings.TrimSpace(parts[1])
			if !hmac.Equal([]byte(token), []byte(secret)) {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
