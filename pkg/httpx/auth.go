package httpx

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminOnly guards the catalog mutation endpoints with a static bearer
// token. With no token configured the admin surface is closed.
func AdminOnly(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				WriteError(w, http.StatusForbidden, "ADMIN_DISABLED", "admin access is not configured")
				return
			}
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), []byte(token)) != 1 {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid admin token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
