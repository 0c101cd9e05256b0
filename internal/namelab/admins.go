package namelab

import (
	"context"
	"net/http"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/models"
)

type CreateAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := c.doJSON(ctx, http.MethodGet, "/admin/admins", nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// CreateAdmin registers a new admin account. The password travels as its
// SHA-512 digest, matching the login and reset-password paths.
func (c *Client) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*models.Admin, error) {
	req.Password = HashPassword(req.Password)
	var admin models.Admin
	if err := c.doJSON(ctx, http.MethodPost, "/admin/create", req, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (c *Client) ResetAdminPassword(ctx context.Context, id, password string) error {
	if id == "" {
		return ErrMissingID
	}
	body := struct {
		Password string `json:"password"`
	}{Password: HashPassword(password)}
	return c.doJSON(ctx, http.MethodPut, "/admin/reset-password/"+id, body, nil)
}
