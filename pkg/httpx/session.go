package httpx

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	SessionCookie = "sid"
	SessionHeader = "X-Session-ID"
)

type sessionKey struct{}

// Sessions makes sure every request carries a session id, taken from the
// X-Session-ID header, then the sid cookie, else freshly minted. The id is
// echoed back in both places so non-browser clients can keep it.
func Sessions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := sessionFromRequest(r)
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(SessionHeader, id)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), id)))
	})
}

func sessionFromRequest(r *http.Request) string {
	if v := r.Header.Get(SessionHeader); validSession(v) {
		return v
	}
	if c, err := r.Cookie(SessionCookie); err == nil && validSession(c.Value) {
		return c.Value
	}
	return ""
}

func validSession(v string) bool {
	if v == "" {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}

func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
