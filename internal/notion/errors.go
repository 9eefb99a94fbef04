package notion

import (
	"encoding/json"
	"fmt"
)

// Machine-readable error codes returned by the Notion API. Only the
// codes this service reacts to are named; anything else is carried
// through in APIError.Code untouched.
const (
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeObjectNotFound     = "object_not_found"
	ErrCodeRestrictedResource = "restricted_resource"
	ErrCodeInvalidRequestURL  = "invalid_request_url"
)

// APIError is a structured error response from the Notion API.
type APIError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// parseAPIError decodes the Notion error envelope. Bodies that are not
// the expected envelope still produce an APIError with the raw body as
// the message, so callers always get a status code to act on.
func parseAPIError(statusCode int, body []byte) *APIError {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = statusCode
		return &apiErr
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}
