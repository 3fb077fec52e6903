package api

import (
	"fmt"
)

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string // first bytes of the response body
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.Code)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.Code, e.Body)
}

// APIError is returned when the backend answers with a failure envelope.
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, msg)
}
