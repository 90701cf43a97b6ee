package repository

import (
	"context"

	"github.com/HYKY/hyky-services/internal/domain/entity"
)

// UserRepository reads user accounts with their role, groups and attributes.
type UserRepository interface {
	// FindByIdentifier looks a user up by username or email. It returns
	// nil, nil when no user matches.
	FindByIdentifier(ctx context.Context, id entity.Identifier) (*entity.User, error)

	// FindByID returns nil, nil when no user matches.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}
