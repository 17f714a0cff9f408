package model

import (
	"errors"
	"fmt"
)

// Store-level sentinels. Repositories translate driver errors into these;
// services translate them further into *Error values, so raw storage errors
// never cross the service boundary.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// DuplicateError reports a unique-constraint violation on a named field
// (username, email or slug), letting services map it to the right resource.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s", e.Field)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// Kind classifies a business failure. Every operation returns either a
// success value or an *Error carrying one of these kinds.
type Kind int

const (
	// KindValidation marks malformed input; the caller's fault, never retried.
	KindValidation Kind = iota + 1
	// KindDuplicate marks a username/email/slug conflict.
	KindDuplicate
	// KindNotFound marks an unknown id, slug or author.
	KindNotFound
	// KindUnauthorized marks an absent or invalid caller identity.
	KindUnauthorized
	// KindForbidden marks an authenticated caller who is not the owner.
	KindForbidden
	// KindDisabled marks a deactivated account.
	KindDisabled
	// KindInternal marks an unexpected store or infrastructure fault.
	KindInternal
)

// Error is the typed failure returned by service operations.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the Kind from err, or KindInternal for any error that is
// not a service Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// NewValidationError reports malformed input.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewDuplicateError reports a taken resource value, e.g. "username".
func NewDuplicateError(resource string) *Error {
	return &Error{Kind: KindDuplicate, Message: resource + " already exists"}
}

// NewNotFoundError reports an unknown resource, e.g. "post".
func NewNotFoundError(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// NewUnauthorizedError reports absent or invalid caller identity.
func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewForbiddenError reports an ownership failure. Kept distinct from
// NotFound on purpose: audit trails must tell absence from denial.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewDisabledError reports a deactivated account.
func NewDisabledError() *Error {
	return &Error{Kind: KindDisabled, Message: "account is deactivated"}
}

// NewInternalError wraps an unexpected fault without leaking its detail
// into the user-visible message.
func NewInternalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: err}
}
