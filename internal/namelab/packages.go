package namelab

import (
	"context"
	"errors"
	"net/http"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/models"
)

func (c *Client) ListPackages(ctx context.Context) ([]models.Package, error) {
	var pkgs []models.Package
	if err := c.doJSON(ctx, http.MethodGet, "/packages", nil, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (c *Client) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var pkg models.Package
	if err := c.doJSON(ctx, http.MethodGet, "/packages/"+id, nil, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (c *Client) CreatePackage(ctx context.Context, pkg models.Package) (*models.Package, error) {
	pkg.ID = ""
	var created models.Package
	if err := c.doJSON(ctx, http.MethodPost, "/packages", pkg, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePackage sends the full record; the API expects the id repeated in
// the request body.
func (c *Client) UpdatePackage(ctx context.Context, id string, pkg models.Package) (*models.Package, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	pkg.ID = id
	var updated models.Package
	if err := c.doJSON(ctx, http.MethodPut, "/packages/"+id, pkg, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePackage removes a package. The API sometimes answers 404 after a
// delete has already gone through; a 404 carrying no message/error body is
// treated as that case and reported as success.
func (c *Client) DeletePackage(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	err := c.doJSON(ctx, http.MethodDelete, "/packages/"+id, nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound && apiErr.Message == "" {
		return nil
	}
	return err
}
