package apiclient

import (
	"errors"
	"fmt"
)

// APIError is returned when the API answered but reported a failure, either
// through an HTTP error status or a success:false body.
type APIError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Endpoint, msg, e.Status)
}

// ServerMessage returns the error string reported by the API, or "" when err
// did not come from an API response.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
