package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yourorg/listings-web/internal/logger"
)

const CookieName = "sid"

type ctxKey struct{}

// FromContext never returns nil; requests without a session get an
// anonymous one.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// SID reads the session cookie. Values that are not uuids are ignored.
func SID(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

func SetCookie(w http.ResponseWriter, sid string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware loads the session once per request. A store failure degrades
// to an anonymous session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := SID(r)
		s, err := m.Init(r.Context(), sid)
		if err != nil {
			logger.From(r.Context()).Warn("session load failed", "sid", sid, "err", err)
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}
