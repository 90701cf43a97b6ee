package entity

import (
	"errors"
	"time"

	domainerrors "github.com/HYKY/hyky-services/internal/domain/errors"
	"github.com/google/uuid"
)

// User is an account able to log in.
type User struct {
	ID        uint
	UUID      uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Deleted   bool

	Username string
	Email    string
	// Password is stored as "<bcrypt hash>§<server salt>".
	Password string
	IsPublic bool

	Role       *Role
	Groups     []*Group
	Attributes []*Attribute
}

// NewUser creates a user with a fresh UUID.
func NewUser(username, email, password string) (*User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	u := &User{
		UUID:     uuid.New(),
		Email:    email,
		Password: password,
	}
	if err := u.SetUsername(username); err != nil {
		return nil, err
	}
	return u, nil
}

// SetUsername assigns the username. It can only be done once.
func (u *User) SetUsername(username string) error {
	if u.Username != "" {
		return domainerrors.UsernameImmutable()
	}
	if username == "" {
		return errors.New("username is required")
	}
	u.Username = username
	return nil
}

// Profile returns every public field of the user, leaving the password out.
func (u *User) Profile() UserProfile {
	profile := UserProfile{
		ID:         u.ID,
		UUID:       u.UUID.String(),
		CreatedAt:  u.CreatedAt.UTC(),
		UpdatedAt:  u.UpdatedAt.UTC(),
		Deleted:    u.Deleted,
		Username:   u.Username,
		Email:      u.Email,
		IsPublic:   u.IsPublic,
		Groups:     make(map[string]string, len(u.Groups)),
		Attributes: make(map[string]string, len(u.Attributes)),
	}

	if u.Role != nil {
		role := u.Role.Profile()
		profile.Role = &role
	}
	for _, g := range u.Groups {
		profile.Groups[g.Slug] = g.Name
	}
	for _, a := range u.Attributes {
		profile.Attributes[a.Name] = a.Value
	}

	return profile
}

// UserProfile is the public view of a User carried inside tokens.
type UserProfile struct {
	ID         uint              `json:"id"`
	UUID       string            `json:"uuid"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Deleted    bool              `json:"deleted"`
	Username   string            `json:"username"`
	Email      string            `json:"email"`
	IsPublic   bool              `json:"is_public"`
	Role       *RoleProfile      `json:"role"`
	Groups     map[string]string `json:"groups"`
	Attributes map[string]string `json:"attributes"`
}
