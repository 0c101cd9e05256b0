package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/audit"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/models"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/namelab"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/session"
)

type PackageHandler struct {
	API       *namelab.Client
	Sessions  *session.Manager
	Templates *TemplateCache
	Audit     *audit.Log
}

func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filter := r.URL.Query().Get("filter")

	sess := h.Sessions.Session(r)

	pkgs, err := h.API.ListPackages(r.Context())
	if err != nil {
		if apiFailedUnauthorized(w, r, h.Sessions, err) {
			return
		}
		sess.AddFlash(FlashMessage{Type: "error", Message: "Failed to fetch packages. Please try again."})
	}

	data := map[string]interface{}{
		"Packages":  filterPackages(pkgs, query, filter),
		"Query":     query,
		"Filter":    filter,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "packages.html", data)
}

func (h *PackageHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Session(r)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
		"Package":   defaultPackage(),
		"Action":    "/packages",
		"Title":     "Add New Package",
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "package_form.html", data)
}

func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	pkg, errs := parsePackageForm(r)
	if len(errs) > 0 {
		h.renderForm(w, r, pkg, errs, "", "/packages", "Add New Package")
		return
	}

	created, err := h.API.CreatePackage(r.Context(), pkg)
	if err != nil {
		h.formError(w, r, pkg, err, "Failed to create package. Please try again.", "/packages", "Add New Package")
		return
	}

	h.Audit.Record(r.Context(), h.Sessions.Email(r), "create", "package", created.ID)

	sess := h.Sessions.Session(r)
	sess.AddFlash(FlashMessage{Type: "success", Message: "Package created successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/packages", http.StatusSeeOther)
}

func (h *PackageHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	pkg, err := h.API.GetPackage(r.Context(), id)
	if err != nil {
		apiFailed(w, r, h.Sessions, err, "Package not found.", "/packages")
		return
	}

	sess := h.Sessions.Session(r)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
		"Package":   *pkg,
		"Action":    "/packages/update",
		"Title":     "Edit Package",
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "package_form.html", data)
}

// Update validates the draft, then routes through a confirmation step before
// anything reaches the API.
func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	pkg, errs := parsePackageForm(r)
	if id == "" {
		errs["id"] = "Package ID is required for update"
	}
	if len(errs) > 0 {
		h.renderForm(w, r, pkg, errs, id, "/packages/update", "Edit Package")
		return
	}

	sess := h.Sessions.Session(r)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
		"Values":    r.PostForm,
		"Action":    "/packages/update/apply",
		"Cancel":    "/packages/edit?id=" + id,
		"Heading":   "Update package",
		"Message":   "Save changes to \"" + pkg.CategoryName + "\"?",
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "confirm.html", data)
}

// UpdateApply performs the confirmed update.
func (h *PackageHandler) UpdateApply(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	pkg, errs := parsePackageForm(r)
	if id == "" || len(errs) > 0 {
		// The confirmation form echoes an already-validated draft; reaching
		// here means it was tampered with.
		http.Redirect(w, r, "/packages", http.StatusSeeOther)
		return
	}

	updated, err := h.API.UpdatePackage(r.Context(), id, pkg)
	if err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to update package. Please try again.", "/packages/edit?id="+id)
		return
	}

	h.Audit.Record(r.Context(), h.Sessions.Email(r), "update", "package", updated.ID)

	sess := h.Sessions.Session(r)
	sess.AddFlash(FlashMessage{Type: "success", Message: "Package updated successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/packages", http.StatusSeeOther)
}

func (h *PackageHandler) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "this package"
	}
	if id == "" {
		http.Redirect(w, r, "/packages", http.StatusSeeOther)
		return
	}

	sess := h.Sessions.Session(r)
	values := map[string][]string{"id": {id}}
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
		"Values":    values,
		"Action":    "/packages/delete",
		"Cancel":    "/packages",
		"Heading":   "Delete package",
		"Message":   "Are you sure you want to delete \"" + name + "\"? This action cannot be undone.",
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "confirm.html", data)
}

func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	sess := h.Sessions.Session(r)
	if id == "" {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Package ID is required for deletion"})
		sess.Save(r, w)
		http.Redirect(w, r, "/packages", http.StatusSeeOther)
		return
	}

	if err := h.API.DeletePackage(r.Context(), strings.TrimSpace(id)); err != nil {
		apiFailed(w, r, h.Sessions, err, "Failed to delete package. Please try again.", "/packages")
		return
	}

	h.Audit.Record(r.Context(), h.Sessions.Email(r), "delete", "package", id)

	sess.AddFlash(FlashMessage{Type: "success", Message: "Package deleted successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/packages", http.StatusSeeOther)
}

// renderForm re-renders the package form with per-field messages and the
// entered draft intact.
func (h *PackageHandler) renderForm(w http.ResponseWriter, r *http.Request, pkg models.Package, errs map[string]string, id, action, title string) {
	pkg.ID = id
	sess := h.Sessions.Session(r)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(sess),
		"Package":   pkg,
		"Errors":    errs,
		"Action":    action,
		"Title":     title,
	}
	sess.Save(r, w)
	renderTemplate(w, h.Templates, "package_form.html", data)
}

// formError renders the form again with a banner, keeping the draft, unless
// the failure was an authorization one.
func (h *PackageHandler) formError(w http.ResponseWriter, r *http.Request, pkg models.Package, err error, fallback, action, title string) {
	if apiFailedUnauthorized(w, r, h.Sessions, err) {
		return
	}
	if apiErr, ok := namelab.AsAPIError(err); ok && apiErr.Message != "" {
		fallback = apiErr.Message
	}
	h.renderForm(w, r, pkg, map[string]string{"_form": fallback}, r.FormValue("id"), action, title)
}

func defaultPackage() models.Package {
	return models.Package{
		CategoryCode: models.CategoryBusiness,
		CategoryName: "Business Naming Solutions",
		Price:        models.PackagePrice{Currency: "USD"},
		Active:       true,
	}
}

func parsePackageForm(r *http.Request) (models.Package, map[string]string) {
	errs := make(map[string]string)

	pkg := models.Package{
		CategoryCode: r.FormValue("categoryCode"),
		CategoryName: strings.TrimSpace(r.FormValue("categoryName")),
		Path: models.PackagePath{
			Code:        strings.TrimSpace(r.FormValue("pathCode")),
			Name:        strings.TrimSpace(r.FormValue("pathName")),
			Description: r.FormValue("pathDescription"),
		},
		Plan: models.PackagePlan{
			Code:      strings.TrimSpace(r.FormValue("planCode")),
			Name:      strings.TrimSpace(r.FormValue("planName")),
			IsPopular: r.FormValue("planPopular") == "on" || r.FormValue("planPopular") == "true",
		},
		Price: models.PackagePrice{
			Currency: r.FormValue("priceCurrency"),
		},
		SubmissionPolicy: models.SubmissionPolicy{
			SubmissionFormat: r.FormValue("submissionFormat"),
		},
		ExpectedOutcome: r.FormValue("expectedOutcome"),
		Description:     r.FormValue("description"),
		Active:          r.FormValue("active") == "on" || r.FormValue("active") == "true",
	}

	if pkg.CategoryCode != models.CategoryBusiness && pkg.CategoryCode != models.CategoryPersonal {
		errs["categoryCode"] = "Category must be BUSINESS or PERSONAL"
	}
	if pkg.CategoryName == "" {
		errs["categoryName"] = "Category name is required"
	}
	if pkg.Path.Name == "" {
		errs["pathName"] = "Path name is required"
	}
	if pkg.Plan.Name == "" {
		errs["planName"] = "Plan name is required"
	}

	amount, err := strconv.ParseFloat(r.FormValue("priceAmount"), 64)
	if err != nil || amount < 0 {
		errs["priceAmount"] = "Price must be a non-negative number"
	}
	pkg.Price.Amount = amount

	if v := r.FormValue("generatedNames"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs["generatedNames"] = "Generated names must be a non-negative number"
		}
		pkg.Deliverables.GeneratedNames = n
	}

	total, err := models.ParseSubmissionValue(r.FormValue("totalSubmissions"))
	if err != nil {
		errs["totalSubmissions"] = "Total submissions must be a number or a min-max range"
	}
	pkg.SubmissionPolicy.TotalSubmissions = total

	maxNames, err := models.ParseSubmissionValue(r.FormValue("maxNamesPerSubmission"))
	if err != nil {
		errs["maxNamesPerSubmission"] = "Max names per submission must be a number or a min-max range"
	}
	pkg.SubmissionPolicy.MaxNamesPerSubmission = maxNames

	if v := r.FormValue("submissionWindowDays"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			errs["submissionWindowDays"] = "Submission window must be a non-negative number of days"
		}
		pkg.SubmissionPolicy.SubmissionWindowDays = days
	}

	if v := r.FormValue("displayOrder"); v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			errs["displayOrder"] = "Display order must be a number"
		}
		pkg.DisplayOrder = order
	}

	return pkg, errs
}
