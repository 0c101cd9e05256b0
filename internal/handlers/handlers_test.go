package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/namelab"
	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/session"
)

func testTemplates(t *testing.T) *TemplateCache {
	t.Helper()
	tc := NewTemplateCache()
	require.NoError(t, tc.Load("../../templates"))
	return tc
}

func testSessions() *session.Manager {
	return session.NewManager([]byte("0123456789abcdef0123456789abcdef"), false, "")
}

// noCallAPI fails the test if any request reaches the API.
func noCallAPI(t *testing.T) *namelab.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected API call: %s %s", r.Method, r.URL.Path)
	}))
	t.Cleanup(srv.Close)
	return namelab.NewClient(srv.URL)
}

func apiStub(t *testing.T, handler http.HandlerFunc) *namelab.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return namelab.NewClient(srv.URL)
}

func postForm(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestRequireAuthRedirectsWithoutToken(t *testing.T) {
	h := &AuthHandler{API: noCallAPI(t), Sessions: testSessions(), Templates: testTemplates(t)}

	called := false
	protected := h.RequireAuth(func(w http.ResponseWriter, r *http.Request) { called = true })

	w := httptest.NewRecorder()
	protected(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginPostSuccess(t *testing.T) {
	api := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"token":"tok-9"}`))
	})
	h := &AuthHandler{API: api, Sessions: testSessions(), Templates: testTemplates(t)}

	w := httptest.NewRecorder()
	h.LoginPost(w, postForm("/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"secret123"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Header().Get("Set-Cookie"))
}

func TestLoginPostInvalidCredentials(t *testing.T) {
	api := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})
	h := &AuthHandler{API: api, Sessions: testSessions(), Templates: testTemplates(t)}

	w := httptest.NewRecorder()
	h.LoginPost(w, postForm("/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"wrong"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginPostMissingFields(t *testing.T) {
	h := &AuthHandler{API: noCallAPI(t), Sessions: testSessions(), Templates: testTemplates(t)}

	w := httptest.NewRecorder()
	h.LoginPost(w, postForm("/login", url.Values{"email": {"admin@example.com"}}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestCreateAdminValidationBlocksShortPassword(t *testing.T) {
	h := &AdminHandler{API: noCallAPI(t), Sessions: testSessions(), Templates: testTemplates(t)}

	w := httptest.NewRecorder()
	h.Create(w, postForm("/admins", url.Values{
		"name":     {"Ada"},
		"email":    {"ada@example.com"},
		"password": {"short"},
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Password must be at least 6 characters")
	// The rejected draft stays in the form.
	assert.Contains(t, w.Body.String(), "ada@example.com")
}

func TestCreateAdminValidationMessages(t *testing.T) {
	h := &AdminHandler{API: noCallAPI(t), Sessions: testSessions(), Templates: testTemplates(t)}

	w := httptest.NewRecorder()
	h.Create(w, postForm("/admins", url.Values{"email": {"not-an-email"}}))

	body := w.Body.String()
	assert.Contains(t, body, "Name is required")
	assert.Contains(t, body, "Invalid email format")
	assert.Contains(t, body, "Password is required")
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	api := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"duplicate key"}`))
	})
	h := &AdminHandler{API: api, Sessions: testSessions(), Templates: testTemplates(t)}

	w := httptest.NewRecorder()
	h.Create(w, postForm("/admins", url.Values{
		"name":     {"Ada"},
		"email":    {"ada@example.com"},
		"password": {"secret123"},
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Admin with this email already exists")
}

func TestResetPasswordMismatch(t *testing.T) {
	h := &AdminHandler{API: noCallAPI(t), Sessions: testSessions(), Templates: testTemplates(t)}

	w := httptest.NewRecorder()
	h.ResetPassword(w, postForm("/admins/reset", url.Values{
		"id":              {"a1"},
		"password":        {"secret123"},
		"confirmPassword": {"secret124"},
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
}

func TestUnauthorizedListEndsSession(t *testing.T) {
	api := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	h := &AdminHandler{API: api, Sessions: testSessions(), Templates: testTemplates(t)}

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/admins", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestParsePackageForm(t *testing.T) {
	r := postForm("/packages", url.Values{
		"categoryCode":          {"BUSINESS"},
		"categoryName":          {"Startup Naming"},
		"pathName":              {"Express"},
		"planName":              {"Pro"},
		"planPopular":           {"on"},
		"priceAmount":           {"49.99"},
		"priceCurrency":         {"USD"},
		"generatedNames":        {"20"},
		"totalSubmissions":      {"2-5"},
		"maxNamesPerSubmission": {"10"},
		"submissionWindowDays":  {"14"},
		"active":                {"on"},
	})

	pkg, errs := parsePackageForm(r)
	assert.Empty(t, errs)
	assert.Equal(t, "Startup Naming", pkg.CategoryName)
	assert.True(t, pkg.Plan.IsPopular)
	assert.Equal(t, 49.99, pkg.Price.Amount)
	assert.True(t, pkg.SubmissionPolicy.TotalSubmissions.Range)
	assert.Equal(t, 2, pkg.SubmissionPolicy.TotalSubmissions.Min)
	assert.Equal(t, 5, pkg.SubmissionPolicy.TotalSubmissions.Max)
	assert.Equal(t, 10, pkg.SubmissionPolicy.MaxNamesPerSubmission.Single)
	assert.True(t, pkg.Active)
}

func TestParsePackageFormErrors(t *testing.T) {
	r := postForm("/packages", url.Values{
		"categoryCode":     {"OTHER"},
		"priceAmount":      {"-1"},
		"totalSubmissions": {"many"},
	})

	_, errs := parsePackageForm(r)
	assert.Equal(t, "Category must be BUSINESS or PERSONAL", errs["categoryCode"])
	assert.Equal(t, "Category name is required", errs["categoryName"])
	assert.Equal(t, "Path name is required", errs["pathName"])
	assert.Equal(t, "Plan name is required", errs["planName"])
	assert.Equal(t, "Price must be a non-negative number", errs["priceAmount"])
	assert.Equal(t, "Total submissions must be a number or a min-max range", errs["totalSubmissions"])
}

func TestPackageListRendersRowsAndFilter(t *testing.T) {
	api := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/packages", r.URL.Path)
		w.Write([]byte(`[
			{"_id":"a","categoryName":"Startup Naming","active":true},
			{"_id":"b","categoryName":"Startup Naming","active":false}
		]`))
	})
	h := &PackageHandler{API: api, Sessions: testSessions(), Templates: testTemplates(t)}

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/packages?filter=active", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "/packages/edit?id=a")
	assert.NotContains(t, body, "/packages/edit?id=b")
}

func TestPackageDeleteConfirmShowsConfirmation(t *testing.T) {
	h := &PackageHandler{API: noCallAPI(t), Sessions: testSessions(), Templates: testTemplates(t)}

	w := httptest.NewRecorder()
	h.DeleteConfirm(w, httptest.NewRequest(http.MethodGet, "/packages/delete?id=p1&name=Startup", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Are you sure you want to delete")
	assert.Contains(t, body, `name="id" value="p1"`)
	assert.Contains(t, body, `action="/packages/delete"`)
}

func TestOrderUploadRejectsNonPDF(t *testing.T) {
	h := &OrderHandler{API: noCallAPI(t), Sessions: testSessions(), Templates: testTemplates(t)}

	var buf strings.Builder
	buf.WriteString("--boundary\r\n")
	buf.WriteString("Content-Disposition: form-data; name=\"id\"\r\n\r\no1\r\n")
	buf.WriteString("--boundary\r\n")
	buf.WriteString("Content-Disposition: form-data; name=\"orderPdf\"; filename=\"names.txt\"\r\n")
	buf.WriteString("Content-Type: text/plain\r\n\r\nhello\r\n")
	buf.WriteString("--boundary--\r\n")

	r := httptest.NewRequest(http.MethodPost, "/orders/upload", strings.NewReader(buf.String()))
	r.Header.Set("Content-Type", "multipart/form-data; boundary=boundary")

	w := httptest.NewRecorder()
	h.UploadPDF(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/orders", w.Header().Get("Location"))
}

func TestSubmissionListScopedToOrder(t *testing.T) {
	api := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions/order/o1", r.URL.Path)
		w.Write([]byte(`[{"_id":"s1","order":{"_id":"o1"},"user":{"_id":"u1","name":"Ada"},"status":"pending"}]`))
	})
	h := &SubmissionHandler{API: api, Sessions: testSessions(), Templates: testTemplates(t)}

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/submissions?order=o1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "/submissions/edit?id=s1")
}
