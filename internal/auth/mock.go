package auth

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// MockAuth provides a mock authentication for local development. Every
// login succeeds as the athlete.
type MockAuth struct {
	sessions  map[string]*Session
	sessionMu sync.RWMutex
}

// NewMockAuth creates a new mock authentication handler
func NewMockAuth() *MockAuth {
	return &MockAuth{
		sessions: make(map[string]*Session),
	}
}

// LoginHandler for mock auth auto-creates a session.
func (m *MockAuth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := generateSessionID()
	session := &Session{
		ID: sessionID,
		User: &User{
			ID:       "dev-user-123",
			Email:    "athlete@recruit.local",
			Name:     "Dev Athlete",
			Username: "athlete",
		},
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	m.sessionMu.Lock()
	m.sessions[sessionID] = session
	m.sessionMu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CallbackHandler is a no-op for mock auth; there is no external
// provider to come back from.
func (m *MockAuth) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LogoutHandler clears the mock session.
func (m *MockAuth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		m.sessionMu.Lock()
		delete(m.sessions, cookie.Value)
		m.sessionMu.Unlock()
	}

	http.SetCookie(w, &http.Cookie{
		Name:   "session_id",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Middleware for mock auth auto-authenticates requests with no session
// instead of redirecting, so development never hits a login wall.
func (m *MockAuth) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user *User

		if cookie, err := r.Cookie("session_id"); err == nil {
			m.sessionMu.RLock()
			if session, ok := m.sessions[cookie.Value]; ok && time.Now().Before(session.ExpiresAt) {
				user = session.User
			}
			m.sessionMu.RUnlock()
		}

		if user == nil {
			user = &User{
				ID:       "dev-user-123",
				Email:    "athlete@recruit.local",
				Name:     "Dev Athlete",
				Username: "athlete",
			}
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
