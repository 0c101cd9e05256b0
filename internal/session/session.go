// Package session centralizes the persisted admin session: the API token
// and the signed-in email live in one gorilla cookie session, mutated only
// by login, logout and the unauthorized-response handler.
package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "admin-session"

	tokenKey = "token"
	emailKey = "email"
)

type Manager struct {
	store *sessions.CookieStore
}

func NewManager(key []byte, secure bool, domain string) *Manager {
	store := sessions.NewCookieStore(key)
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	if domain != "" {
		store.Options.Domain = domain
	}
	return &Manager{store: store}
}

// Session returns the request's admin session, creating it when absent.
// Errors from a stale or tampered cookie yield a fresh session.
func (m *Manager) Session(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, sessionName)
	return s
}

// Token returns the stored API token, or "" when not signed in.
func (m *Manager) Token(r *http.Request) string {
	token, _ := m.Session(r).Values[tokenKey].(string)
	return token
}

// Email returns the signed-in admin's email for display and audit entries.
func (m *Manager) Email(r *http.Request) string {
	email, _ := m.Session(r).Values[emailKey].(string)
	return email
}

// SignIn stores the freshly obtained token.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, token, email string) error {
	s := m.Session(r)
	s.Values[tokenKey] = token
	s.Values[emailKey] = email
	return s.Save(r, w)
}

// Clear drops the stored credentials; used on logout and on any request the
// API answered with an authorization failure.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	s := m.Session(r)
	delete(s.Values, tokenKey)
	delete(s.Values, emailKey)
	s.Options.MaxAge = -1
	s.Save(r, w)
}
