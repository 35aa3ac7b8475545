package clinicsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	ErrorCodeBadRequest  = "bad_request"
	ErrorCodeServerError = "server_error"
	ErrorCodeRateLimited = "rate_limit_exceeded"
	ErrorCodeNotFound    = "not_found"
)

// ErrUnauthenticated is returned by Login for a wrong email or password.
var ErrUnauthenticated = errors.New("clinicsdk: invalid credentials")

// APIError is a non-success response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// parseErrorResponse turns a failed response into an *APIError. The service
// reports business errors as plain text and server errors as JSON.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return &APIError{
				StatusCode: resp.StatusCode,
				Code:       errResp.Error,
				Message:    errResp.ErrorDescription,
			}
		}
	}

	code := ErrorCodeServerError
	switch resp.StatusCode {
	case http.StatusBadRequest:
		code = ErrorCodeBadRequest
	case http.StatusNotFound:
		code = ErrorCodeNotFound
	case http.StatusTooManyRequests:
		code = ErrorCodeRateLimited
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Code: code, Message: msg}
}
