// Package seed loads the bootstrap data set and writes it to an empty
// database.
package seed

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// File names inside the seed directory. JSON is read through the YAML
// decoder, so either syntax works.
const (
	GroupsFile      = "user.groups.json"
	PermissionsFile = "user.permissions.json"
	RolesFile       = "user.roles.json"
	UsersFile       = "user.users.json"
)

type GroupSeed struct {
	Name        string `yaml:"name" validate:"required,max=100"`
	Slug        string `yaml:"slug" validate:"max=100"`
	Description string `yaml:"description"`
	Image       string `yaml:"image" validate:"max=250"`
	IsPublic    bool   `yaml:"is_public"`
	IsProtected bool   `yaml:"is_protected"`
}

type PermissionSeed struct {
	Name string `yaml:"name" validate:"required,max=100"`
	Slug string `yaml:"slug" validate:"max=100"`
}

type RoleSeed struct {
	Name        string   `yaml:"name" validate:"required,max=100"`
	Slug        string   `yaml:"slug" validate:"max=100"`
	Description string   `yaml:"description"`
	Permissions []string `yaml:"permissions"`
}

type UserSeed struct {
	Username   string            `yaml:"username" validate:"required,max=100"`
	Email      string            `yaml:"email" validate:"required,email,max=250"`
	Password   string            `yaml:"password" validate:"required"`
	Role       string            `yaml:"role"`
	Groups     []string          `yaml:"groups"`
	Attributes map[string]string `yaml:"attributes"`
}

// Bundle is the whole bootstrap data set.
type Bundle struct {
	Groups      []GroupSeed      `validate:"dive"`
	Permissions []PermissionSeed `validate:"dive"`
	Roles       []RoleSeed       `validate:"dive"`
	Users       []UserSeed       `validate:"dive"`
}

var validate = validator.New()

// LoadDir reads and validates the four seed files in dir. A missing file
// is an error.
func LoadDir(dir string) (*Bundle, error) {
	b := &Bundle{}

	files := []struct {
		name string
		out  interface{}
	}{
		{GroupsFile, &b.Groups},
		{PermissionsFile, &b.Permissions},
		{RolesFile, &b.Roles},
		{UsersFile, &b.Users},
	}
	for _, f := range files {
		if err := decodeFile(filepath.Join(dir, f.name), f.out); err != nil {
			return nil, err
		}
	}

	if err := validate.Struct(b); err != nil {
		return nil, fmt.Errorf("invalid seed data in %s: %w", dir, err)
	}
	return b, nil
}

func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
