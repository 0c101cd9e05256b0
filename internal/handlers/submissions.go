package handlers

import (
	"bytes"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/audit"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/models"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/namelab"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/session"
)

type SubmissionHandler struct {
	API       *namelab.Client
	Sessions  *session.Manager
	Templates *TemplateCache
	Audit     *audit.Log
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	status := r.URL.Query().Get("status")
	orderID := r.URL.Query().Get("order")

	sess := h.Sessions.Session(r)

	var subs []models.Submission
	var err error
	if orderID != "" {
		subs, err = h.API.ListSubmissionsByOrder(r.Context(), orderID)
	} else {
		subs, err = h.API.ListSubmissions(r.Context())
	}
	if err != nil {
		if apiFailedUnauthorized(w, r, h.Sessions, err) {
			return
		}
		sess.AddFlash(FlashMessage{Type: "error", Message: "Failed to fetch submissions. Please try again."})
	}

	data := map[string]interface{}{
		"Submissions": filterSubmissions(subs, query, status),
		"Query":       query,
		"Status":      status,
		"OrderID":     orderID,
		"Statuses":    models.SubmissionStatuses(),
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(sess),
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "submissions.html", data)
}

func (h *SubmissionHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Redirect(w, r, "/submissions", http.StatusSeeOther)
		return
	}

	subs, err := h.API.ListSubmissions(r.Context())
	if err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to fetch submission. Please try again.", "/submissions")
		return
	}

	var sub *models.Submission
	for i := range subs {
		if subs[i].ID == id {
			sub = &subs[i]
			break
		}
	}
	if sub == nil {
		sess := h.Sessions.Session(r)
		sess.AddFlash(FlashMessage{Type: "error", Message: "Submission not found."})
		sess.Save(r, w)
		http.Redirect(w, r, "/submissions", http.StatusSeeOther)
		return
	}

	sess := h.Sessions.Session(r)
	data := map[string]interface{}{
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(sess),
		"Submission": *sub,
		"Statuses":   models.SubmissionStatuses(),
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "submission_form.html", data)
}

func (h *SubmissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Session(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		sess.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		sess.Save(r, w)
		http.Redirect(w, r, "/submissions", http.StatusSeeOther)
		return
	}

	id := r.FormValue("id")
	if id == "" {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Submission ID is required"})
		sess.Save(r, w)
		http.Redirect(w, r, "/submissions", http.StatusSeeOther)
		return
	}

	status := r.FormValue("status")
	if status != "" && !validSubmissionStatus(status) {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Invalid submission status selected."})
		sess.Save(r, w)
		http.Redirect(w, r, "/submissions/edit?id="+id, http.StatusSeeOther)
		return
	}

	req := namelab.UpdateSubmissionRequest{
		Status:       status,
		AdminComment: r.FormValue("adminComment"),
	}

	// The response PDF is optional.
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		req.File = file
		req.Filename = header.Filename
	}

	sub, err := h.API.UpdateSubmission(r.Context(), id, req)
	if err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to update submission. Please try again.", "/submissions/edit?id="+id)
		return
	}

	entityID := id
	if sub != nil {
		entityID = sub.ID
	}
	h.Audit.Record(r.Context(), h.Sessions.Email(r), "update", "submission", entityID)

	sess.AddFlash(FlashMessage{Type: "success", Message: "Submission updated successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/submissions", http.StatusSeeOther)
}

func (h *SubmissionHandler) DownloadAdminPDF(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, "admin")
}

func (h *SubmissionHandler) DownloadUserPDF(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, "user")
}

func (h *SubmissionHandler) download(w http.ResponseWriter, r *http.Request, kind string) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Redirect(w, r, "/submissions", http.StatusSeeOther)
		return
	}

	var buf bytes.Buffer
	var err error
	if kind == "admin" {
		err = h.API.DownloadAdminPDF(r.Context(), id, &buf)
	} else {
		err = h.API.DownloadUserPDF(r.Context(), id, &buf)
	}
	if err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to download PDF.", "/submissions")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="submission-`+kind+`-`+id+`.pdf"`)
	w.Write(buf.Bytes())
}

func validSubmissionStatus(status string) bool {
	for _, s := range models.SubmissionStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
