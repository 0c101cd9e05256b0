package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/namelab"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/session"
)

// minPasswordLen matches the API's password policy.
const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// signOut clears the stored credentials and returns to the login view. Used
// on logout and whenever the API answers with an authorization failure.
func signOut(w http.ResponseWriter, r *http.Request, sessions *session.Manager) {
	sessions.Clear(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// apiFailedUnauthorized handles only the authorization case: the session is
// ended and the request sent to the login view. Reports whether it did so.
func apiFailedUnauthorized(w http.ResponseWriter, r *http.Request, sessions *session.Manager, err error) bool {
	if errors.Is(err, namelab.ErrUnauthorized) {
		signOut(w, r, sessions)
		return true
	}
	return false
}

// apiFailed turns an API error into a flash + redirect. Authorization
// failures bypass the page's own error handling and end the session. The
// server's message is preferred over the per-action fallback when present.
// Reports whether err was non-nil.
func apiFailed(w http.ResponseWriter, r *http.Request, sessions *session.Manager, err error, fallback, redirectTo string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, namelab.ErrUnauthorized) {
		signOut(w, r, sessions)
		return true
	}

	message := fallback
	var apiErr *namelab.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}

	sess := sessions.Session(r)
	sess.AddFlash(FlashMessage{Type: "error", Message: message})
	sess.Save(r, w)
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
	return true
}

func renderTemplate(w http.ResponseWriter, tc *TemplateCache, name string, data map[string]interface{}) {
	tmpl := tc.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, data)
}
