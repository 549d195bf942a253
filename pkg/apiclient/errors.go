package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNetwork indicates the request never produced an HTTP response.
	ErrNetwork = errors.New("network request failed")
	// ErrEncodeRequest indicates the request could not be built or encoded.
	ErrEncodeRequest = errors.New("failed to encode request")
	// ErrDecodeResponse indicates a 2xx response body could not be decoded.
	ErrDecodeResponse = errors.New("failed to decode response")
)

// HTTPError is a non-2xx upstream response. The raw body is preserved so
// callers can surface upstream validation messages as-is.
type HTTPError struct {
	Status    int
	Body      []byte
	RequestID string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned status %d (request %s)", e.Status, e.RequestID)
}

// Message extracts a human-readable message from the response body.
// It understands the common {"message": "..."} and {"error": "..."} shapes
// and falls back to the raw body text.
func (e *HTTPError) Message() string {
	var payload struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Err != "" {
			return payload.Err
		}
	}
	return string(e.Body)
}

// AsHTTPError unwraps err into *HTTPError when the failure carries an
// upstream response.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
