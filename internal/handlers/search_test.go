package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/models"
)

func TestMatchesSearch(t *testing.T) {
	assert.True(t, matchesSearch("", "anything"))
	assert.True(t, matchesSearch("START", "Startup Naming"))
	assert.True(t, matchesSearch("naming", "Startup Naming"))
	assert.False(t, matchesSearch("enterprise", "Startup Naming"))
	assert.True(t, matchesSearch("x", "", "prefix-x"))
}

func testPackages() []models.Package {
	return []models.Package{
		{ID: "a", CategoryName: "Startup Naming", Active: true, Plan: models.PackagePlan{Name: "Basic"}},
		{ID: "b", CategoryName: "Startup Naming", Active: false, Plan: models.PackagePlan{Name: "Pro", IsPopular: true}},
		{ID: "c", CategoryName: "Personal Branding", Active: true, Plan: models.PackagePlan{Name: "Pro", IsPopular: true}},
	}
}

func TestFilterPackagesActive(t *testing.T) {
	out := filterPackages(testPackages(), "startup", "active")
	if assert.Len(t, out, 1) {
		assert.Equal(t, "a", out[0].ID)
	}
}

func TestFilterPackagesPopular(t *testing.T) {
	out := filterPackages(testPackages(), "", "popular")
	assert.Len(t, out, 2)

	out = filterPackages(testPackages(), "", "regular")
	if assert.Len(t, out, 1) {
		assert.Equal(t, "a", out[0].ID)
	}
}

func TestFilterPackagesAll(t *testing.T) {
	assert.Len(t, filterPackages(testPackages(), "", "all"), 3)
	assert.Len(t, filterPackages(testPackages(), "", ""), 3)
	assert.Len(t, filterPackages(testPackages(), "inactive", "all"), 0)
}

func TestFilterOrders(t *testing.T) {
	orders := []models.Order{
		{ID: "o1", User: models.UserRef{Name: "Ada Lovelace"}, Status: models.OrderPending, BusinessInfo: models.BusinessInfo{BusinessName: "Acme"}},
		{ID: "o2", User: models.UserRef{Email: "grace@example.com"}, Status: models.OrderConfirmed, Package: "pkg-pro"},
	}

	out := filterOrders(orders, "ada", "")
	if assert.Len(t, out, 1) {
		assert.Equal(t, "o1", out[0].ID)
	}

	out = filterOrders(orders, "", models.OrderConfirmed)
	if assert.Len(t, out, 1) {
		assert.Equal(t, "o2", out[0].ID)
	}

	// Search hits the package and business name fields too.
	assert.Len(t, filterOrders(orders, "pkg-pro", ""), 1)
	assert.Len(t, filterOrders(orders, "acme", ""), 1)
	assert.Len(t, filterOrders(orders, "", "all"), 2)
}

func TestFilterSubmissions(t *testing.T) {
	subs := []models.Submission{
		{ID: "s1", User: models.UserRef{Name: "Ada"}, Order: models.OrderRef{ID: "o1"}, Status: models.SubmissionPending},
		{ID: "s2", User: models.UserRef{Email: "grace@example.com"}, Order: models.OrderRef{ID: "o2"}, Status: models.SubmissionApproved},
	}

	out := filterSubmissions(subs, "grace", "")
	if assert.Len(t, out, 1) {
		assert.Equal(t, "s2", out[0].ID)
	}

	out = filterSubmissions(subs, "", models.SubmissionPending)
	if assert.Len(t, out, 1) {
		assert.Equal(t, "s1", out[0].ID)
	}

	assert.Len(t, filterSubmissions(subs, "o2", ""), 1)
}

func TestFilterAdmins(t *testing.T) {
	admins := []models.Admin{
		{ID: "a1", Name: "Ada", Email: "ada@example.com"},
		{ID: "a2", Name: "Grace", Email: "grace@example.com"},
	}
	assert.Len(t, filterAdmins(admins, ""), 2)
	out := filterAdmins(admins, "GRACE")
	if assert.Len(t, out, 1) {
		assert.Equal(t, "a2", out[0].ID)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("admin@example.com"))
	assert.True(t, validEmail("a.b+c@sub.example.io"))
	assert.False(t, validEmail("not-an-email"))
	assert.False(t, validEmail("missing@tld"))
	assert.False(t, validEmail("spaces in@example.com"))
}
