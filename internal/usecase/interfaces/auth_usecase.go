package interfaces

import (
	"context"

	"github.com/HYKY/hyky-services/internal/usecase/dto"
)

// AuthUseCase issues session tokens.
type AuthUseCase interface {
	// Login checks the credentials and returns a signed token. Every token
	// the user held before is invalidated.
	Login(ctx context.Context, params dto.LoginParams) (string, error)
}
