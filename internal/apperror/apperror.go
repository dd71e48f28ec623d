// Package apperror holds the error kinds services return to the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindAccessDenied
	KindNotFound
	KindInvalidReference
	KindDuplicateEmail
	KindDuplicateUsername
	KindInvalidCredentials
	KindValidation
)

const (
	CodeAccessDenied       = "access_denied"
	CodeNotFound           = "not_found"
	CodeInvalidReference   = "invalid_reference"
	CodeDuplicateEmail     = "duplicate_email"
	CodeDuplicateUsername  = "duplicate_username"
	CodeInvalidCredentials = "invalid_credentials"
	CodeTokenExpired       = "token_expired"
	CodeUnauthorized       = "unauthorized"
	CodeInvalidPayload     = "invalid_payload"
	CodeValidation         = "validation_error"
	CodeInternal           = "internal_server_error"
)

// Error is a classified failure. Message is safe to show to clients, Err is not.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func AccessDenied(reason string) *Error {
	return &Error{Kind: KindAccessDenied, Code: CodeAccessDenied, Message: reason}
}

func NotFound(entity string, id any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found with id: %v", entity, id),
	}
}

// NotFoundBy is NotFound for lookups by a field other than id.
func NotFoundBy(entity, field string, value any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found with %s: %v", entity, field, value),
	}
}

func InvalidReference(field string) *Error {
	return &Error{
		Kind:    KindInvalidReference,
		Code:    CodeInvalidReference,
		Message: fmt.Sprintf("%s does not reference an existing entity", field),
	}
}

func DuplicateEmail() *Error {
	return &Error{Kind: KindDuplicateEmail, Code: CodeDuplicateEmail, Message: "Email already registered"}
}

func DuplicateUsername() *Error {
	return &Error{Kind: KindDuplicateUsername, Code: CodeDuplicateUsername, Message: "Username already exists"}
}

// InvalidCredentials never says whether the identity or the password was wrong.
func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Code: CodeInvalidCredentials, Message: "Invalid credentials"}
}

func TokenExpired(err error) *Error {
	return &Error{Kind: KindInvalidCredentials, Code: CodeTokenExpired, Message: "Token expired", Err: err}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: msg}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: msg, Err: err}
}

// KindOf returns the kind of err, and false when err is not classified.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return KindInternal, false
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
