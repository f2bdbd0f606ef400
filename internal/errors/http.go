package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ClassifyHTTPStatus maps an HTTP status code to a failure kind and retry
// category. 4xx statuses (except 408 and 429) are irrecoverable; 5xx and
// transport failures are recoverable.
func ClassifyHTTPStatus(statusCode int) (Kind, Category) {
	switch {
	case statusCode == 401:
		return KindUnauthorized, Irrecoverable
	case statusCode == 403:
		return KindForbidden, Irrecoverable
	case statusCode == 404:
		return KindNotFound, Irrecoverable
	case statusCode == 408 || statusCode == 429:
		return KindOther, Recoverable
	case statusCode >= 400 && statusCode < 500:
		return KindOther, Irrecoverable
	case statusCode >= 500 && statusCode < 600:
		return KindServer, Recoverable
	default:
		// Unexpected status codes - be conservative and allow retry.
		return KindOther, Recoverable
	}
}

// NewHTTPError creates a classified error for a non-success HTTP response.
func NewHTTPError(statusCode int, body string, operation string) *ClassifiedError {
	kind, category := ClassifyHTTPStatus(statusCode)
	return &ClassifiedError{
		Kind:       kind,
		Category:   category,
		StatusCode: statusCode,
		Body:       body,
		Underlying: fmt.Errorf("%s failed: HTTP %d", operation, statusCode),
	}
}

// NewNetworkError creates a classified error for a transport-level failure.
// Network errors are always recoverable as they may be transient.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Kind:       KindNetwork,
		Category:   Recoverable,
		StatusCode: 0,
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}

// AsClassified unwraps err to a *ClassifiedError.
func AsClassified(err error) (*ClassifiedError, bool) {
	var ce *ClassifiedError
	ok := errors.As(err, &ce)
	return ce, ok
}

// Detail extracts the server's "detail" message from a classified error's
// body, if present. Returns "" otherwise.
func Detail(err error) string {
	var ce *ClassifiedError
	if !errors.As(err, &ce) || ce.Body == "" {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal([]byte(ce.Body), &payload) != nil {
		return ""
	}
	return payload.Detail
}
