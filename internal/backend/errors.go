package backend

import (
	"errors"
	"fmt"
)

// NetworkMessage is shown when the backend cannot be reached at all.
const NetworkMessage = "Network error. Please check if the server is running."

var (
	ErrNetwork = errors.New("backend unreachable")
	ErrDecode  = errors.New("malformed backend response")
)

// APIError is a non-2xx backend response. Message is the body's "error" field,
// else its "message" field, else empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Message turns a client error into the text shown to the user: the network
// message, the backend's own message verbatim, or fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNetwork) {
		return NetworkMessage
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusCode returns the backend status for an APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
