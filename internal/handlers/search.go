package handlers

import (
	"strings"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/models"
)

// matchesSearch reports whether any field contains the term as a
// case-insensitive substring. An empty term matches everything.
func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// filterPackages keeps packages matching the search term AND the categorical
// filter (all|popular|regular|active|inactive).
func filterPackages(pkgs []models.Package, term, filter string) []models.Package {
	var out []models.Package
	for _, p := range pkgs {
		if !matchesSearch(term, p.CategoryName, p.Description, p.Plan.Name, p.Path.Name) {
			continue
		}
		switch filter {
		case "popular":
			if !p.Plan.IsPopular {
				continue
			}
		case "regular":
			if p.Plan.IsPopular {
				continue
			}
		case "active":
			if !p.Active {
				continue
			}
		case "inactive":
			if p.Active {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func filterOrders(orders []models.Order, term, status string) []models.Order {
	var out []models.Order
	for _, o := range orders {
		if !matchesSearch(term, o.User.Display(), o.Package, o.BusinessInfo.BusinessName) {
			continue
		}
		if status != "" && status != "all" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out
}

func filterSubmissions(subs []models.Submission, term, status string) []models.Submission {
	var out []models.Submission
	for _, s := range subs {
		if !matchesSearch(term, s.User.Name, s.User.Email, s.Order.ID) {
			continue
		}
		if status != "" && status != "all" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	return out
}

func filterAdmins(admins []models.Admin, term string) []models.Admin {
	var out []models.Admin
	for _, a := range admins {
		if matchesSearch(term, a.Name, a.Email) {
			out = append(out, a)
		}
	}
	return out
}
