package apierrors

import (
	"errors"
	"fmt"
)

// Kind identifies a client-visible error category. Kinds are part of the API
// contract: they surface in the GraphQL response under extensions.code.
type Kind string

const (
	KindAuthenticationRequired Kind = "AUTHENTICATION_REQUIRED"
	KindInvalidCredentials     Kind = "INVALID_CREDENTIALS"
	KindUserAlreadyExists      Kind = "USER_ALREADY_EXISTS"
	KindForbidden              Kind = "FORBIDDEN"
	KindNotFound               Kind = "NOT_FOUND"
	KindValidation             Kind = "VALIDATION_ERROR"
	KindInternal               Kind = "INTERNAL"
)

// Error is an error safe to return to the client. Anything else is mapped to
// a generic internal error at the transport boundary, with the original
// cause logged server-side only.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions exposes the kind to the GraphQL error formatter.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Kind)}
}

// NewAuthenticationRequired reports a missing or invalid credential on an
// operation that requires one.
func NewAuthenticationRequired() *Error {
	return &Error{Kind: KindAuthenticationRequired, Message: "authentication required"}
}

// NewInvalidCredentials reports a failed login. The message is identical for
// unknown email and wrong password so clients cannot enumerate users.
func NewInvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "invalid email or password"}
}

// NewUserAlreadyExists reports an email collision on registration.
func NewUserAlreadyExists(email string) *Error {
	return &Error{Kind: KindUserAlreadyExists, Message: fmt.Sprintf("user with email %s already exists", email)}
}

// NewForbidden reports an ownership mismatch on a mutation.
func NewForbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "you do not have access to this resource"}
}

// NewNotFound reports a missing entity.
func NewNotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", entity)}
}

// NewValidation reports an invalid input field.
func NewValidation(field, reason string) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf("%s %s", field, reason)}
}

// NewInternal reports a server-side failure without exposing its cause.
func NewInternal() *Error {
	return &Error{Kind: KindInternal, Message: "internal server error"}
}

// AsError returns err unchanged when it already carries a client-visible
// kind, and a generic internal error otherwise.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternal()
}
