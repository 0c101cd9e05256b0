package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/audit"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/namelab"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/session"
)

type DashboardHandler struct {
	API       *namelab.Client
	Sessions  *session.Manager
	Templates *TemplateCache
	Audit     *audit.Log
}

type dashboardStats struct {
	TotalPackages      int
	TotalOrders        int
	OrdersByStatus     map[string]int
	PendingSubmissions int
}

func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Session(r)

	stats := dashboardStats{OrdersByStatus: make(map[string]int)}

	pkgs, err := h.API.ListPackages(r.Context())
	if err != nil {
		if apiFailedUnauthorized(w, r, h.Sessions, err) {
			return
		}
		sess.AddFlash(FlashMessage{Type: "error", Message: "Failed to fetch stats. Please try again."})
	}
	stats.TotalPackages = len(pkgs)

	orders, err := h.API.ListOrders(r.Context())
	if err != nil {
		if apiFailedUnauthorized(w, r, h.Sessions, err) {
			return
		}
	}
	stats.TotalOrders = len(orders)
	for _, o := range orders {
		stats.OrdersByStatus[o.Status]++
	}

	subs, err := h.API.ListSubmissions(r.Context())
	if err != nil {
		if apiFailedUnauthorized(w, r, h.Sessions, err) {
			return
		}
	}
	for _, s := range subs {
		if s.Status == "pending" {
			stats.PendingSubmissions++
		}
	}

	recent, err := h.Audit.Recent(r.Context(), 10)
	if err != nil {
		// Activity log is best effort; the dashboard renders without it.
		recent = nil
	}

	data := map[string]interface{}{
		"Stats":     stats,
		"Recent":    recent,
		"Email":     h.Sessions.Email(r),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "dashboard.html", data)
}
