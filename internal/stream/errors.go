package stream

import (
	"fmt"
	"net/http"
)

// APIError is the error body returned by the Stream REST API.
type APIError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"StatusCode"`
	Duration   string `json:"duration,omitempty"`
	MoreInfo   string `json:"more_info,omitempty"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("Stream error code %d: %s", e.Code, msg)
}
