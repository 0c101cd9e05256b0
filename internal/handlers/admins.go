package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/audit"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/namelab"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/session"
)

type AdminHandler struct {
	API       *namelab.Client
	Sessions  *session.Manager
	Templates *TemplateCache
	Audit     *audit.Log
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	sess := h.Sessions.Session(r)

	admins, err := h.API.ListAdmins(r.Context())
	if err != nil {
		if apiFailedUnauthorized(w, r, h.Sessions, err) {
			return
		}
		sess.AddFlash(FlashMessage{Type: "error", Message: "Failed to fetch admins. Please try again."})
	}

	data := map[string]interface{}{
		"Admins":    filterAdmins(admins, query),
		"Query":     query,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "admins.html", data)
}

func (h *AdminHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Session(r)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "admin_form.html", data)
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := namelab.CreateAdminRequest{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}

	errs := make(map[string]string)
	if req.Name == "" {
		errs["name"] = "Name is required"
	}
	if req.Email == "" {
		errs["email"] = "Email is required"
	} else if !validEmail(req.Email) {
		errs["email"] = "Invalid email format"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	} else if len(req.Password) < minPasswordLen {
		errs["password"] = "Password must be at least 6 characters"
	}
	if len(errs) > 0 {
		h.renderForm(w, r, errs)
		return
	}

	admin, err := h.API.CreateAdmin(r.Context(), req)
	if err != nil {
		if apiFailedUnauthorized(w, r, h.Sessions, err) {
			return
		}
		message := "Failed to create admin. Please try again."
		if apiErr, ok := namelab.AsAPIError(err); ok && apiErr.StatusCode == http.StatusBadRequest {
			message = "Admin with this email already exists"
		}
		h.renderForm(w, r, map[string]string{"_form": message})
		return
	}

	h.Audit.Record(r.Context(), h.Sessions.Email(r), "create", "admin", admin.ID)

	sess := h.Sessions.Session(r)
	sess.AddFlash(FlashMessage{Type: "success", Message: "Admin created successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/admins", http.StatusSeeOther)
}

func (h *AdminHandler) ResetForm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Redirect(w, r, "/admins", http.StatusSeeOther)
		return
	}

	sess := h.Sessions.Session(r)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
		"AdminID":   id,
		"AdminName": r.URL.Query().Get("name"),
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "admin_reset.html", data)
}

func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	password := r.FormValue("password")
	confirm := r.FormValue("confirmPassword")

	sess := h.Sessions.Session(r)
	if id == "" {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Admin ID is required"})
		sess.Save(r, w)
		http.Redirect(w, r, "/admins", http.StatusSeeOther)
		return
	}

	errs := make(map[string]string)
	if password == "" {
		errs["password"] = "Password is required"
	} else if len(password) < minPasswordLen {
		errs["password"] = "Password must be at least 6 characters"
	}
	if confirm != password {
		errs["confirmPassword"] = "Passwords do not match"
	}
	if len(errs) > 0 {
		data := map[string]interface{}{
			"CsrfField": csrf.TemplateField(r),
			"Flashes":   GetFlash(sess),
			"AdminID":   id,
			"AdminName": r.FormValue("name"),
			"Errors":    errs,
		}
		sess.Save(r, w)
		renderTemplate(w, h.Templates, "admin_reset.html", data)
		return
	}

	if err := h.API.ResetAdminPassword(r.Context(), id, password); err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to reset password. Please try again.", "/admins")
		return
	}

	h.Audit.Record(r.Context(), h.Sessions.Email(r), "reset-password", "admin", id)

	sess.AddFlash(FlashMessage{Type: "success", Message: "Password reset successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/admins", http.StatusSeeOther)
}

func (h *AdminHandler) renderForm(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	sess := h.Sessions.Session(r)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
		"Errors":    errs,
		"Name":      r.FormValue("name"),
		"Email":     r.FormValue("email"),
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "admin_form.html", data)
}
