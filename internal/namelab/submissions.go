package namelab

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/models"
)

// UpdateSubmissionRequest is the admin's review of a submission: a status,
// an optional comment and an optional response PDF. Empty fields are left
// out of the form.
type UpdateSubmissionRequest struct {
	Status       string
	AdminComment string
	Filename     string
	File         io.Reader
}

func (c *Client) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	var subs []models.Submission
	if err := c.doJSON(ctx, http.MethodGet, "/submissions", nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *Client) ListSubmissionsByOrder(ctx context.Context, orderID string) ([]models.Submission, error) {
	if orderID == "" {
		return nil, ErrMissingID
	}
	var subs []models.Submission
	if err := c.doJSON(ctx, http.MethodGet, "/submissions/order/"+orderID, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *Client) UpdateSubmission(ctx context.Context, id string, req UpdateSubmissionRequest) (*models.Submission, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var out struct {
		Success bool               `json:"success"`
		Data    *models.Submission `json:"data"`
	}
	err := c.doMultipart(ctx, http.MethodPut, "/submissions/"+id, func(mw *multipart.Writer) error {
		if req.Status != "" {
			if err := mw.WriteField("status", req.Status); err != nil {
				return err
			}
		}
		if req.AdminComment != "" {
			if err := mw.WriteField("adminComment", req.AdminComment); err != nil {
				return err
			}
		}
		if req.File != nil {
			part, err := mw.CreateFormFile("file", req.Filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, req.File); err != nil {
				return err
			}
		}
		return nil
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// DownloadAdminPDF streams the admin's response document for a submission.
func (c *Client) DownloadAdminPDF(ctx context.Context, id string, dst io.Writer) error {
	if id == "" {
		return ErrMissingID
	}
	return c.download(ctx, "/submissions/"+id+"/download-admin", dst)
}

// DownloadUserPDF streams the customer's uploaded document for a submission.
func (c *Client) DownloadUserPDF(ctx context.Context, id string, dst io.Writer) error {
	if id == "" {
		return ErrMissingID
	}
	return c.download(ctx, "/submissions/"+id+"/download-user", dst)
}
