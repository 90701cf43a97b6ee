package interfaces

import (
	"context"

	"github.com/HYKY/hyky-services/internal/domain/entity"
)

// TokenUseCase checks session tokens.
type TokenUseCase interface {
	// ValidateToken decodes token. It has no side effects.
	ValidateToken(ctx context.Context, token string) (*entity.TokenPayload, error)

	// VerifySession decodes token and requires its stored row to be valid.
	VerifySession(ctx context.Context, token string) (*entity.TokenPayload, error)
}
