// Package domainerrors defines the coded error vocabulary shared by the
// alias and profile-field registries. Validation and invariant failures are
// returned as typed values with a stable code; callers map codes to HTTP
// statuses or user-facing messages without parsing error strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the kind of a domain error.
type Code string

const (
	// CodeInvalidInput covers malformed input: a host that fails alias
	// normalization, a missing required field value, an unparseable ID.
	CodeInvalidInput Code = "invalid_input"

	// CodeDuplicateAlias signals a host collision with an existing alias of
	// any tenant, whether detected pre-write or reported by the store.
	CodeDuplicateAlias Code = "duplicate_alias"

	// CodeDuplicateName signals a profile field name collision within a tenant.
	CodeDuplicateName Code = "duplicate_name"

	// CodeRequiredField signals a structural validation rule violation,
	// e.g. a required text field with zero length.
	CodeRequiredField Code = "required_field"

	// CodeForbiddenDelete signals deletion of a primary alias or a
	// protected profile field.
	CodeForbiddenDelete Code = "forbidden_delete"

	// CodeNotFound signals that a referenced identifier does not exist.
	CodeNotFound Code = "not_found"

	// CodeForbidden signals an actor lacking the capability for an operation.
	CodeForbidden Code = "forbidden"

	// CodeInternal covers store or collaborator failures unrelated to input
	// validity. Surfaced opaquely; details stay in the logs.
	CodeInternal Code = "internal"
)

// Error is a domain error with a stable code and an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal so that
// unclassified failures never leak as client errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the message from err. Internal errors return an opaque
// message regardless of the underlying cause.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Code != CodeInternal {
		return de.Message
	}
	return "internal error"
}

// HTTPStatus maps a domain error code to an HTTP status.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidInput, CodeRequiredField:
		return http.StatusBadRequest
	case CodeDuplicateAlias, CodeDuplicateName:
		return http.StatusConflict
	case CodeForbiddenDelete, CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
