package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/namelab"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/session"
)

type AuthHandler struct {
	API       *namelab.Client
	Sessions  *session.Manager
	Templates *TemplateCache
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	// Already signed in; go straight to the dashboard.
	if h.Sessions.Token(r) != "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	sess := h.Sessions.Session(r)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "login.html", data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	sess := h.Sessions.Session(r)

	if email == "" || password == "" {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Email and password are required"})
		sess.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	token, err := h.API.Login(r.Context(), email, password)
	if err != nil {
		if _, ok := namelab.AsAPIError(err); ok {
			sess.AddFlash(FlashMessage{Type: "error", Message: "Invalid email or password"})
		} else {
			sess.AddFlash(FlashMessage{Type: "error", Message: "Network error. Please try again."})
		}
		sess.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.Sessions.SignIn(w, r, token, email); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful, redirecting to /dashboard", "email", email)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	signOut(w, r, h.Sessions)
}

// RequireAuth gates the dashboard pages: without a stored token the request
// is sent to the login view; with one, the token rides along in the request
// context for the API client.
func (h *AuthHandler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := h.Sessions.Token(r)
		if token == "" {
			sess := h.Sessions.Session(r)
			sess.AddFlash(FlashMessage{Type: "error", Message: "You must be signed in to access this page."})
			sess.Save(r, w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r.WithContext(namelab.WithToken(r.Context(), token)))
	}
}
