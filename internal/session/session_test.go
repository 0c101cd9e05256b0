package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *Manager {
	return NewManager([]byte("0123456789abcdef0123456789abcdef"), false, "")
}

// roundTrip signs in, then replays the issued cookie on a fresh request.
func roundTrip(t *testing.T, m *Manager) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, m.SignIn(w, r, "tok-1", "admin@example.com"))

	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestSignInPersistsTokenAndEmail(t *testing.T) {
	m := newManager()
	r := roundTrip(t, m)

	assert.Equal(t, "tok-1", m.Token(r))
	assert.Equal(t, "admin@example.com", m.Email(r))
}

func TestTokenEmptyWithoutSession(t *testing.T) {
	m := newManager()
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	assert.Empty(t, m.Token(r))
	assert.Empty(t, m.Email(r))
}

func TestClearDropsCredentials(t *testing.T) {
	m := newManager()
	r := roundTrip(t, m)

	w := httptest.NewRecorder()
	m.Clear(w, r)

	// The request's session object no longer carries the values.
	assert.Empty(t, m.Token(r))
	assert.Empty(t, m.Email(r))

	// And the response instructs the browser to drop the cookie.
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestTamperedCookieYieldsFreshSession(t *testing.T) {
	m := newManager()
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: "admin-session", Value: "garbage"})

	assert.Empty(t, m.Token(r))
}
