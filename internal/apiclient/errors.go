package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport wraps failures to reach the API at all
	ErrTransport = errors.New("api unreachable")
	// ErrNotConfigured is returned when no base URL is set
	ErrNotConfigured = errors.New("api base url not configured")
)

// APIError is a non-2xx response from the API
type APIError struct {
	Status  int
	Message string
	Errors  []string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the API
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// newAPIError builds the error for a failed response. data is the parsed body.
func newAPIError(status int, data any) *APIError {
	e := &APIError{
		Status:  status,
		Message: fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status)),
		Errors:  []string{},
	}
	body, ok := data.(map[string]any)
	if !ok {
		return e
	}
	if msg, ok := body["message"].(string); ok && msg != "" {
		e.Message = msg
	}
	if list, ok := body["errors"].([]any); ok {
		for _, item := range list {
			e.Errors = append(e.Errors, errorText(item))
		}
	}
	return e
}

func errorText(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return msg
		}
	}
	b, err := json.Marshal(item)
	if err != nil {
		return fmt.Sprint(item)
	}
	return string(b)
}
