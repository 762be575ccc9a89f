// Package session identifies browser and API sessions with a signed cookie.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	// CookieName is the name of the signed session cookie.
	CookieName = "socialpanel_session"

	// MaxAge is the lifetime of the session cookie.
	MaxAge = 7 * 24 * time.Hour

	idKey = "id"
)

type contextKey struct{}

// Manager issues and reads session ids stored in a gorilla/sessions cookie.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager creates a Manager signing cookies with secret.
func NewManager(secret []byte) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(MaxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// ID returns the request's session id, issuing a new one (and setting the
// cookie on w) when the request carries no valid session.
func (m *Manager) ID(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, ok := FromContext(r.Context()); ok {
		return id, nil
	}

	// A cookie signed with another secret fails to decode; Get still returns
	// a new session in that case.
	sess, _ := m.store.Get(r, CookieName)
	if id, ok := sess.Values[idKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	sess.Values[idKey] = id
	sess.Options.Secure = r.TLS != nil
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session cookie: %w", err)
	}
	return id, nil
}

// Middleware resolves the session id before next runs and makes it available
// through FromContext.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.ID(w, r)
		if err != nil {
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

// WithID returns a copy of ctx carrying the session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the session id stored by Middleware.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}
