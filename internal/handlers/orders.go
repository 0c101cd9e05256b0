package handlers

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/audit"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/models"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/namelab"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/session"
)

type OrderHandler struct {
	API       *namelab.Client
	Sessions  *session.Manager
	Templates *TemplateCache
	Audit     *audit.Log
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	status := r.URL.Query().Get("status")

	sess := h.Sessions.Session(r)

	orders, err := h.API.ListOrders(r.Context())
	if err != nil {
		if apiFailedUnauthorized(w, r, h.Sessions, err) {
			return
		}
		sess.AddFlash(FlashMessage{Type: "error", Message: "Failed to fetch orders. Please try again."})
	}

	data := map[string]interface{}{
		"Orders":    filterOrders(orders, query, status),
		"Query":     query,
		"Status":    status,
		"Statuses":  models.OrderStatuses(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "orders.html", data)
}

func (h *OrderHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Session(r)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
		"Order":     models.Order{},
		"Statuses":  models.OrderStatuses(),
		"Action":    "/orders",
		"Title":     "Create Order",
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "order_form.html", data)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := namelab.CreateOrderRequest{
		User:    strings.TrimSpace(r.FormValue("user")),
		Package: strings.TrimSpace(r.FormValue("package")),
		BusinessInfo: models.BusinessInfo{
			BusinessName: strings.TrimSpace(r.FormValue("businessName")),
			DateOfBirth:  r.FormValue("dateOfBirth"),
		},
	}

	errs := make(map[string]string)
	if req.User == "" {
		errs["user"] = "User is required"
	}
	if req.Package == "" {
		errs["package"] = "Package is required"
	}
	if req.BusinessInfo.BusinessName == "" {
		errs["businessName"] = "Business name is required"
	}
	if len(errs) > 0 {
		h.renderForm(w, r, errs, "", "/orders", "Create Order")
		return
	}

	order, err := h.API.CreateOrder(r.Context(), req)
	if err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to create order. Please try again.", "/orders/new")
		return
	}

	h.Audit.Record(r.Context(), h.Sessions.Email(r), "create", "order", order.ID)

	sess := h.Sessions.Session(r)
	sess.AddFlash(FlashMessage{Type: "success", Message: "Order created successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *OrderHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	// The API has no single-order read; the edit form works off the listing.
	orders, err := h.API.ListOrders(r.Context())
	if err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to fetch order. Please try again.", "/orders")
		return
	}

	var order *models.Order
	for i := range orders {
		if orders[i].ID == id {
			order = &orders[i]
			break
		}
	}
	if order == nil {
		sess := h.Sessions.Session(r)
		sess.AddFlash(FlashMessage{Type: "error", Message: "Order not found."})
		sess.Save(r, w)
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	sess := h.Sessions.Session(r)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
		"Order":     *order,
		"Statuses":  models.OrderStatuses(),
		"Action":    "/orders/update",
		"Title":     "Edit Order",
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "order_form.html", data)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	sess := h.Sessions.Session(r)
	if id == "" {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Order ID is required for update"})
		sess.Save(r, w)
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	status := r.FormValue("status")
	if status != "" && !validOrderStatus(status) {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Invalid order status selected."})
		sess.Save(r, w)
		http.Redirect(w, r, "/orders/edit?id="+id, http.StatusSeeOther)
		return
	}

	req := namelab.UpdateOrderRequest{
		User:    strings.TrimSpace(r.FormValue("user")),
		Package: strings.TrimSpace(r.FormValue("package")),
		Status:  status,
	}
	if name := strings.TrimSpace(r.FormValue("businessName")); name != "" || r.FormValue("dateOfBirth") != "" {
		req.BusinessInfo = &models.BusinessInfo{
			BusinessName: name,
			DateOfBirth:  r.FormValue("dateOfBirth"),
		}
	}

	order, err := h.API.UpdateOrder(r.Context(), id, req)
	if err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to update order. Please try again.", "/orders/edit?id="+id)
		return
	}

	h.Audit.Record(r.Context(), h.Sessions.Email(r), "update", "order", order.ID)

	sess.AddFlash(FlashMessage{Type: "success", Message: "Order updated successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *OrderHandler) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	sess := h.Sessions.Session(r)
	values := map[string][]string{"id": {id}}
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
		"Values":    values,
		"Action":    "/orders/delete",
		"Cancel":    "/orders",
		"Heading":   "Delete order",
		"Message":   "Are you sure you want to delete this order? This action cannot be undone.",
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "confirm.html", data)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	sess := h.Sessions.Session(r)
	if id == "" {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Order ID is required for deletion"})
		sess.Save(r, w)
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	if err := h.API.DeleteOrder(r.Context(), id); err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to delete order. Please try again.", "/orders")
		return
	}

	h.Audit.Record(r.Context(), h.Sessions.Email(r), "delete", "order", id)

	sess.AddFlash(FlashMessage{Type: "success", Message: "Order deleted successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	sess := h.Sessions.Session(r)
	if id == "" {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Order ID is required"})
		sess.Save(r, w)
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	order, err := h.API.ConfirmOrder(r.Context(), id)
	if err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to confirm order. Please try again.", "/orders")
		return
	}

	h.Audit.Record(r.Context(), h.Sessions.Email(r), "confirm", "order", order.ID)

	sess.AddFlash(FlashMessage{Type: "success", Message: "Order confirmed successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *OrderHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Session(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		sess.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		sess.Save(r, w)
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	id := r.FormValue("id")
	if id == "" {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Order ID is required"})
		sess.Save(r, w)
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("orderPdf")
	if err != nil {
		sess.AddFlash(FlashMessage{Type: "error", Message: "PDF file is required."})
		sess.Save(r, w)
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Only PDF files are allowed."})
		sess.Save(r, w)
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	if _, err := h.API.UploadOrderPDF(r.Context(), id, header.Filename, file); err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to upload PDF. Please try again.", "/orders")
		return
	}

	h.Audit.Record(r.Context(), h.Sessions.Email(r), "upload-pdf", "order", id)

	sess.AddFlash(FlashMessage{Type: "success", Message: "PDF uploaded successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *OrderHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	// Buffer the document so a failed download can still fall back to the
	// list with an error flash instead of a truncated response.
	var buf bytes.Buffer
	if err := h.API.DownloadOrderPDF(r.Context(), id, &buf); err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to download PDF.", "/orders")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="order-`+id+`.pdf"`)
	w.Write(buf.Bytes())
}

func validOrderStatus(status string) bool {
	for _, s := range models.OrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

func (h *OrderHandler) renderForm(w http.ResponseWriter, r *http.Request, errs map[string]string, id, action, title string) {
	sess := h.Sessions.Session(r)
	order := models.Order{
		ID:      id,
		User:    models.UserRef{ID: r.FormValue("user")},
		Package: r.FormValue("package"),
		Status:  r.FormValue("status"),
		BusinessInfo: models.BusinessInfo{
			BusinessName: r.FormValue("businessName"),
			DateOfBirth:  r.FormValue("dateOfBirth"),
		},
	}
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
		"Order":     order,
		"Errors":    errs,
		"Statuses":  models.OrderStatuses(),
		"Action":    action,
		"Title":     title,
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "order_form.html", data)
}
