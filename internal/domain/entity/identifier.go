package entity

import (
	"strings"

	domainerrors "github.com/HYKY/hyky-services/internal/domain/errors"
	"github.com/go-playground/validator/v10"
)

// IdentifierKind tells how a login identifier is looked up.
type IdentifierKind int

const (
	IdentifierUsername IdentifierKind = iota + 1
	IdentifierEmail
)

func (k IdentifierKind) String() string {
	switch k {
	case IdentifierUsername:
		return "username"
	case IdentifierEmail:
		return "email"
	default:
		return "unknown"
	}
}

// Identifier is a username or an email address.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

var validate = validator.New()

// ParseIdentifier classifies raw by email syntax. Surrounding whitespace is
// dropped; an empty value is MissingCredentials.
func ParseIdentifier(raw string) (Identifier, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Identifier{}, domainerrors.MissingCredentials()
	}

	if validate.Var(value, "email") == nil {
		return Identifier{Kind: IdentifierEmail, Value: value}, nil
	}
	return Identifier{Kind: IdentifierUsername, Value: value}, nil
}

func (i Identifier) IsEmail() bool {
	return i.Kind == IdentifierEmail
}

func (i Identifier) String() string {
	return i.Kind.String() + ":" + i.Value
}
