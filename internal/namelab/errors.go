package namelab

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is surfaced for 401/403 responses on any call. The web
// layer reacts by clearing the stored session and returning to the login
// view, regardless of which page issued the request.
var ErrUnauthorized = errors.New("unauthorized")

// ErrMissingID is returned when a mutating call is attempted without a
// resolved identifier. It never reaches the network.
var ErrMissingID = errors.New("entity id is required")

// APIError is a non-2xx response from the Name Lab API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// AsAPIError unwraps err into an APIError, distinguishing a server-rejected
// request from a transport failure.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 API response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// newAPIError extracts a message/error field from a JSON error body when one
// is present. Binary download failures pass their body through here too, so
// a JSON error smuggled inside a PDF response still produces a readable
// message.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}
