package graph

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CodeUnsupportedOperation is the Graph error code returned for operations the
// Instagram API does not allow (for example liking media through a business token).
const CodeUnsupportedOperation = 100

// APIError is a non-2xx response from the Graph API.
type APIError struct {
	StatusCode int
	Code       int
	Subcode    int
	Type       string
	Message    string
	FBTraceID  string
	// Payload is the response body, always valid JSON.
	Payload json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph api error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
}

// Unsupported reports whether the provider rejected the operation as unsupported.
func (e *APIError) Unsupported() bool {
	return e.Code == CodeUnsupportedOperation
}

// IsUnsupported reports whether err is an APIError with the unsupported-operation code.
func IsUnsupported(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unsupported()
}

type errorEnvelope struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FBTraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var env errorEnvelope
	if json.Valid(body) {
		apiErr.Payload = json.RawMessage(body)
		if err := json.Unmarshal(body, &env); err == nil {
			apiErr.Code = env.Error.Code
			apiErr.Subcode = env.Error.ErrorSubcode
			apiErr.Type = env.Error.Type
			apiErr.Message = env.Error.Message
			apiErr.FBTraceID = env.Error.FBTraceID
		}
	} else {
		raw, _ := json.Marshal(string(body))
		apiErr.Payload = raw
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status code %d", status)
	}
	return apiErr
}
