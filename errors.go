package feedkit

import (
	stderrors "errors"

	ierr "github.com/feedkit/feedkit-go/internal/errors"
	"github.com/feedkit/feedkit-go/internal/shardqueue"
)

var errEmptyBaseURL = stderrors.New("baseURL cannot be empty")

// Sentinels re-exported so callers compare against a single symbol.
var (
	// ErrEmptyInput: the input was empty after trimming; nothing was sent.
	ErrEmptyInput = ierr.ErrEmptyInput

	// ErrNotAuthenticated: a mutating operation was attempted without a
	// session.
	ErrNotAuthenticated = ierr.ErrNotAuthenticated

	// ErrNotOwner: the operation requires ownership of the viewed profile.
	ErrNotOwner = ierr.ErrNotOwner

	// ErrUnknownEntity: the targeted entity id is not in the cache.
	ErrUnknownEntity = ierr.ErrUnknownEntity

	// ErrMutationInFlight: the entity already has a mutation pending.
	ErrMutationInFlight = ierr.ErrMutationInFlight

	// ErrBackPressure: the internal shard queue is full.
	ErrBackPressure = shardqueue.ErrQueueFull
)

// Error types re-exported for callers that need the details.
type (
	AuthError   = ierr.AuthError
	HTTPError   = ierr.ClassifiedError
	SchemaError = ierr.SchemaError
)

// AuthError reasons.
const (
	ReasonInvalidCredentials = ierr.ReasonInvalidCredentials
	ReasonProfileNotFound    = ierr.ReasonProfileNotFound
)

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return stderrors.Is(err, ErrBackPressure) }

// IsUnauthorized reports whether err is a classified 401.
func IsUnauthorized(err error) bool { return ierr.IsUnauthorized(err) }

// AuthReason returns the reason of an AuthError, "" for other errors.
func AuthReason(err error) string { return ierr.AuthReason(err) }
