// Package apperr defines the closed set of error kinds returned by the
// data-access layer and how each kind maps onto an HTTP status.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for callers that must react to it.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindConfiguration:
		return "configuration"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for the kind.
// Configuration errors surface as a generic failure.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified application error. Sentinels below are compared by
// identity, so wrap them with fmt.Errorf("...: %w", ErrX) to add context.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// New returns a fresh classified error, for messages that carry request data.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Validation is shorthand for New(KindValidation, "invalid_request", message).
func Validation(message string) *Error {
	return New(KindValidation, "invalid_request", message)
}

var (
	ErrTenantNotFound      = New(KindNotFound, "tenant_not_found", "tenant not found")
	ErrTenantMismatch      = New(KindForbidden, "tenant_mismatch", "not authorized for tenant")
	ErrUserNotFound        = New(KindNotFound, "user_not_found", "user not found in this company")
	ErrPostNotFound        = New(KindNotFound, "post_not_found", "post not found in this company")
	ErrRoleNotFound        = New(KindNotFound, "role_not_found", "role not found in this company")
	ErrAuthorNotInTenant   = New(KindForbidden, "author_not_in_tenant", "author does not belong to this company")
	ErrUserNotInTenant     = New(KindForbidden, "user_not_in_tenant", "user does not belong to this company")
	ErrActorMismatch       = New(KindForbidden, "actor_mismatch", "acting user does not match the authenticated user")
	ErrPermissionDenied    = New(KindForbidden, "permission_denied", "access level does not grant this action")
	ErrDuplicateEmail      = New(KindConflict, "duplicate_email", "email is already in use")
	ErrDuplicateRoleName   = New(KindConflict, "duplicate_role_name", "a role with this name already exists in this company")
	ErrDuplicateTag        = New(KindConflict, "duplicate_tag", "a tag with this name already exists in this company")
	ErrDuplicateDepartment = New(KindConflict, "duplicate_department", "a department with this name already exists in this company")
	ErrConflict            = New(KindConflict, "conflict", "resource already exists")
	ErrInvalidReference    = New(KindValidation, "invalid_reference", "referenced record does not exist")
	ErrPasswordTooLong     = New(KindValidation, "password_too_long", "password must be at most 72 bytes")
	ErrInvalidCredentials  = New(KindUnauthorized, "invalid_credentials", "email or password is incorrect")
	ErrMissingSeed         = New(KindConfiguration, "missing_seed", "access level 'Admin' not found; run the seed routine")
)

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}
