package middleware

import (
	"context"
	"net/http"

	"therapy-practice-admin/internal/auth"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionCookie names the cookie holding the signed session token.
const SessionCookie = "session"

// SessionChecker looks up whether a signed session is still live.
type SessionChecker interface {
	SessionActive(ctx context.Context, id string) (bool, error)
}

// RequireAuth redirects to /login unless the request carries a validly
// signed session cookie whose server-side session is still live. The
// session is placed in the request context.
func RequireAuth(secret string, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookie)
			if err != nil || c.Value == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			s, err := auth.ParseToken(c.Value, secret)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			live, err := sessions.SessionActive(r.Context(), s.ID)
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if !live {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func SessionFrom(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(auth.Session)
	return s, ok
}
