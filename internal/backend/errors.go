package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError represents a failed backend call: transport failure or a non-2xx
// response. StatusCode is zero when the request never reached the server.
type APIError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("backend request %s failed: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("backend request %s failed with status %d: %s", e.Path, e.StatusCode, e.Message)
}

// NotFound reports whether the backend answered 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// newAPIError builds an APIError from a non-2xx response, pulling the
// message out of the conventional {"error": "..."} body when present.
func newAPIError(path string, resp *http.Response) *APIError {
	msg := resp.Status
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil && len(body) > 0 {
		var parsed struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &parsed); err == nil {
			if parsed.Error != "" {
				msg = parsed.Error
			} else if parsed.Message != "" {
				msg = parsed.Message
			}
		}
	}
	return &APIError{Path: path, StatusCode: resp.StatusCode, Message: msg}
}
