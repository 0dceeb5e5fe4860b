package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidField indicates a patch touched a field outside the update whitelist.
var ErrInvalidField = errors.New("field is not patchable")

// ErrInvalidReason indicates a reassignment reason outside the allowed bounds.
var ErrInvalidReason = errors.New("reassignment reason must be between 10 and 500 characters")

// ErrNoChangeRequested indicates a reassignment where owning office, current
// office and approver all match their current values.
var ErrNoChangeRequested = errors.New("no change requested")

// ErrNoActiveDelegation indicates a minute claimed a delegated action without
// an active delegation backing it.
var ErrNoActiveDelegation = errors.New("no active delegation for acting user")

// ErrDuplicateActiveDelegation indicates an active delegation already exists
// for the correspondence/executive pair.
var ErrDuplicateActiveDelegation = errors.New("an active delegation already exists for this correspondence and executive")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token has expired")

// RemoteError wraps a backing-store failure. Field-level messages from the
// store are carried verbatim when available so callers can surface them.
type RemoteError struct {
	Fields map[string][]string
	Err    error
}

func (e *RemoteError) Error() string {
	if len(e.Fields) == 0 {
		if e.Err != nil {
			return fmt.Sprintf("backing store failure: %v", e.Err)
		}
		return "backing store failure"
	}
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return "backing store failure: " + strings.Join(parts, ", ")
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewRemoteError wraps err as a RemoteError without field details.
func NewRemoteError(err error) *RemoteError {
	return &RemoteError{Err: err}
}
