package repository

import (
	"context"

	"github.com/HYKY/hyky-services/internal/domain/entity"
)

// TokenRepository stores issued session tokens.
type TokenRepository interface {
	// FindByToken returns the row whose token string matches exactly, or
	// nil, nil. Rows are looked up by entity.TokenDigest.
	FindByToken(ctx context.Context, token string) (*entity.SessionToken, error)

	// Rotate invalidates every valid token of token.UserID and inserts token
	// as the only valid one, in a single transaction holding a lock on the
	// user row. beforeCommit, when not nil, runs last inside the transaction
	// and an error from it rolls everything back. It returns the token
	// strings it invalidated.
	Rotate(ctx context.Context, token *entity.SessionToken, beforeCommit func(ctx context.Context) error) ([]string, error)

	// ListByUserID returns the tokens of a user, newest first.
	ListByUserID(ctx context.Context, userID uint) ([]*entity.SessionToken, error)
}
