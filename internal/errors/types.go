// Package errors provides the error taxonomy shared by the SDK: classified
// HTTP failures, authentication failures, and local validation failures.
// Classification drives both retry policy and the user-facing message the
// interaction engine shows.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies the failure class of a remote call.
type Kind int

const (
	// KindUnauthorized is a 401; the engine treats it as session expiry.
	KindUnauthorized Kind = iota
	// KindForbidden is a 403.
	KindForbidden
	// KindNotFound is a 404.
	KindNotFound
	// KindServer is any 5xx.
	KindServer
	// KindNetwork is a transport-level failure with no HTTP status.
	KindNetwork
	// KindOther covers remaining 4xx statuses.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindServer:
		return "ServerError"
	case KindNetwork:
		return "NetworkError"
	default:
		return "Other"
	}
}

// Category determines how errors should be handled by retry logic.
type Category int

const (
	// Recoverable errors may be retried with exponential backoff.
	Recoverable Category = iota

	// Irrecoverable errors fail immediately without retry.
	Irrecoverable
)

func (c Category) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError wraps a remote-call failure with its kind and retry
// category. Body carries the raw response payload for diagnostics and for
// extracting server detail messages.
type ClassifiedError struct {
	Kind       Kind
	Category   Category
	StatusCode int    // 0 for non-HTTP errors
	Body       string // response body, possibly empty
	Underlying error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Kind, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Kind, e.Underlying)
}

func (e *ClassifiedError) Unwrap() error { return e.Underlying }

// IsIrrecoverable reports whether err should not be retried.
func IsIrrecoverable(err error) bool {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Category == Irrecoverable
	}
	return false
}

// KindOf returns the Kind of a classified error, or KindOther and false
// when err is not classified.
func KindOf(err error) (Kind, bool) {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return KindOther, false
}

// IsUnauthorized reports whether err is a classified 401.
func IsUnauthorized(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindUnauthorized
}

// ------------------------------
// Authentication failures
// ------------------------------

// AuthError reasons.
const (
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonProfileNotFound    = "profile_not_found"
)

// AuthError reports a failed login. Reason is one of the Reason* constants.
type AuthError struct {
	Reason     string
	Underlying error
}

func (e *AuthError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Underlying)
	}
	return fmt.Sprintf("auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Underlying }

// AuthReason returns the reason of an AuthError, or "" when err is not one.
func AuthReason(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return ""
}

// ------------------------------
// Local failures
// ------------------------------

// ErrEmptyInput is returned when user input is empty after trimming.
// Validation failures never reach the network.
var ErrEmptyInput = errors.New("empty input")

// ErrNotAuthenticated is returned when a mutating operation is attempted
// without a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrNotOwner is returned when an operation requires ownership of the
// viewed profile.
var ErrNotOwner = errors.New("not the profile owner")

// ErrUnknownEntity is returned when a mutation targets an entity id that is
// not in the cache.
var ErrUnknownEntity = errors.New("unknown entity")

// ErrMutationInFlight is returned when a mutation is invoked for an entity
// whose previous mutation has not settled yet. The UI disables the
// affordance while its own request is in flight, so hitting this indicates
// a wiring bug in the caller.
var ErrMutationInFlight = errors.New("mutation already in flight")

// SchemaError reports a response payload that did not match the expected
// shape for an endpoint. The resource client fails fast instead of letting
// half-decoded values propagate.
type SchemaError struct {
	Endpoint string
	Err      error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %s: %v", e.Endpoint, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
