package httpx

import (
	"fmt"
	"net/http"
	"strings"
)

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// PermissiveCORS is what a standalone, browser-facing relay needs.
func PermissiveCORS(origins []string) *CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &CORSConfig{
		Enabled:        true,
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"authorization", "x-client-info", "apikey", "content-type", "x-session-id"},
		MaxAge:         86400,
	}
}

// CORS answers preflight requests with 204 and decorates every other
// response with the configured headers when the origin is allowed.
func CORS(config *CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config == nil || !config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			origin := r.Header.Get("Origin")
			if isOriginAllowed(origin, config.AllowedOrigins) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				if config.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if len(config.AllowedMethods) > 0 {
					h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				}
				if len(config.AllowedHeaders) > 0 {
					h.Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				}
				if config.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", fmt.Sprintf("%d", config.MaxAge))
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isOriginAllowed supports "*", exact origins, "https://*.example.com" and
// "http://localhost:*". An empty origin is a same-origin request.
func isOriginAllowed(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}

	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}

		if idx := strings.Index(allowed, "*."); idx >= 0 {
			before, after := allowed[:idx], allowed[idx+2:]
			if strings.HasPrefix(origin, before) && strings.HasSuffix(origin, "."+after) &&
				len(origin) > len(before)+len(after)+1 {
				return true
			}
		}

		if strings.HasSuffix(allowed, ":*") {
			base := strings.TrimSuffix(allowed, ":*")
			if strings.HasPrefix(origin, base+":") {
				return true
			}
		}
	}

	return false
}
