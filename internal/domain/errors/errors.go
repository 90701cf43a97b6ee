// Package errors defines the failure kinds of authentication and their
// mapping onto service error codes.
package errors

import (
	"errors"

	pkgerrors "github.com/HYKY/hyky-services/pkg/errors"
)

// Kind classifies an authentication failure.
type Kind int

const (
	KindInternal Kind = iota
	KindMissingCredentials
	KindInvalidCredentials
	KindMissingToken
	KindInvalidToken
	KindUnauthorized
	KindImmutableField
)

var kindNames = map[Kind]string{
	KindInternal:           "Internal",
	KindMissingCredentials: "MissingCredentials",
	KindInvalidCredentials: "InvalidCredentials",
	KindMissingToken:       "MissingToken",
	KindInvalidToken:       "InvalidToken",
	KindUnauthorized:       "Unauthorized",
	KindImmutableField:     "ImmutableField",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Code returns the service error code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindInternal:
		return pkgerrors.ErrInternal
	case KindImmutableField:
		return pkgerrors.ErrInvalidArgument
	default:
		return pkgerrors.ErrUnauthenticated
	}
}

// Messages returned to clients.
const (
	MsgMissingCredentials = "No username/e-mail provided."
	MsgInvalidCredentials = "Invalid username/e-mail address or password."
	MsgMissingToken       = "No token provided."
	MsgInvalidToken       = "Invalid user token provided."
	MsgUnauthorized       = "The token provided is invalid and/or has expired."
	MsgUsernameImmutable  = "You cannot change your username."
	MsgInternal           = "Internal Server Error"
)

// AuthError is an authentication failure of a given Kind.
// It satisfies pkg/errors.Error.
type AuthError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Code returns the service error code of the kind.
func (e *AuthError) Code() string {
	return e.Kind.Code()
}

// Is matches another AuthError of the same kind.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// New creates an AuthError.
func New(kind Kind, message string) *AuthError {
	return &AuthError{Kind: kind, Message: message}
}

// Wrap creates an AuthError with a cause.
func Wrap(kind Kind, message string, err error) *AuthError {
	return &AuthError{Kind: kind, Message: message, Err: err}
}

// Sentinels for errors.Is. They match any AuthError of their kind.
var (
	ErrMissingCredentials = &AuthError{Kind: KindMissingCredentials}
	ErrInvalidCredentials = &AuthError{Kind: KindInvalidCredentials}
	ErrMissingToken       = &AuthError{Kind: KindMissingToken}
	ErrInvalidToken       = &AuthError{Kind: KindInvalidToken}
	ErrUnauthorized       = &AuthError{Kind: KindUnauthorized}
	ErrImmutableField     = &AuthError{Kind: KindImmutableField}
)

func MissingCredentials() *AuthError {
	return New(KindMissingCredentials, MsgMissingCredentials)
}

// InvalidCredentials never says which check failed.
func InvalidCredentials() *AuthError {
	return New(KindInvalidCredentials, MsgInvalidCredentials)
}

func MissingToken() *AuthError {
	return New(KindMissingToken, MsgMissingToken)
}

func InvalidToken(cause error) *AuthError {
	return Wrap(KindInvalidToken, MsgInvalidToken, cause)
}

func Unauthorized(cause error) *AuthError {
	return Wrap(KindUnauthorized, MsgUnauthorized, cause)
}

func UsernameImmutable() *AuthError {
	return New(KindImmutableField, MsgUsernameImmutable)
}

func Internal(cause error) *AuthError {
	return Wrap(KindInternal, MsgInternal, cause)
}

// KindOf returns the kind of the first AuthError in the chain.
// Any other error is Internal.
func KindOf(err error) Kind {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return KindInternal
}
