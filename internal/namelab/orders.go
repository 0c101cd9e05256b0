package namelab

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/models"
)

type CreateOrderRequest struct {
	User         string              `json:"user"`
	Package      string              `json:"package"`
	BusinessInfo models.BusinessInfo `json:"businessInfo"`
}

// UpdateOrderRequest carries only the fields being changed.
type UpdateOrderRequest struct {
	User         string               `json:"user,omitempty"`
	Package      string               `json:"package,omitempty"`
	BusinessInfo *models.BusinessInfo `json:"businessInfo,omitempty"`
	Status       string               `json:"status,omitempty"`
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doJSON(ctx, http.MethodGet, "/admin/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.doJSON(ctx, http.MethodPost, "/admin/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*models.Order, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var order models.Order
	if err := c.doJSON(ctx, http.MethodPut, "/admin/orders/"+id, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return c.doJSON(ctx, http.MethodDelete, "/admin/orders/"+id, nil, nil)
}

func (c *Client) ConfirmOrder(ctx context.Context, id string) (*models.Order, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var order models.Order
	if err := c.doJSON(ctx, http.MethodPut, "/admin/orders/"+id+"/confirm", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UploadOrderPDF attaches the generated-names PDF to an order. The API takes
// a multipart form with the file under the "orderPdf" field and answers with
// the stored path.
func (c *Client) UploadOrderPDF(ctx context.Context, id, filename string, file io.Reader) (string, error) {
	if id == "" {
		return "", ErrMissingID
	}
	var out struct {
		URL string `json:"url"`
	}
	err := c.doMultipart(ctx, http.MethodPost, "/admin/orders/"+id+"/upload", func(mw *multipart.Writer) error {
		part, err := mw.CreateFormFile("orderPdf", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, file)
		return err
	}, &out)
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *Client) DownloadOrderPDF(ctx context.Context, id string, dst io.Writer) error {
	if id == "" {
		return ErrMissingID
	}
	return c.download(ctx, "/admin/orders/"+id+"/download", dst)
}
