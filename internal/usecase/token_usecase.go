package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HYKY/hyky-services/internal/domain/entity"
	domainerrors "github.com/HYKY/hyky-services/internal/domain/errors"
	"github.com/HYKY/hyky-services/internal/domain/repository"
	"github.com/HYKY/hyky-services/internal/domain/service"
	"github.com/HYKY/hyky-services/internal/infrastructure/metrics"
	"github.com/HYKY/hyky-services/internal/usecase/constants"
	"github.com/HYKY/hyky-services/internal/usecase/interfaces"
	"go.uber.org/zap"
)

var (
	errTokenUnknown = errors.New("token not found")
	errTokenRevoked = errors.New("token has been invalidated")
	errTokenExpired = errors.New("token has expired")
)

// TokenConfig holds session lookup settings.
type TokenConfig struct {
	// CacheTTL caps how long a positive session lookup is cached. Zero
	// disables the cache.
	CacheTTL time.Duration
	// EnforceExpiry rejects stored tokens past expires_at.
	EnforceExpiry bool
	// Now replaces time.Now when set.
	Now func() time.Time
}

type TokenUseCase struct {
	logger          *zap.Logger
	config          TokenConfig
	codec           *service.TokenCodec
	tokenRepository repository.TokenRepository
	cache           repository.CacheRepository
	auditLogUseCase interfaces.AuditLogUseCase
	metrics         *metrics.Metrics
}

var _ interfaces.TokenUseCase = (*TokenUseCase)(nil)

func NewTokenUseCase(
	logger *zap.Logger,
	config TokenConfig,
	codec *service.TokenCodec,
	tokenRepo repository.TokenRepository,
	cache repository.CacheRepository,
	auditLogUC interfaces.AuditLogUseCase,
	m *metrics.Metrics,
) *TokenUseCase {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &TokenUseCase{
		logger:          logger,
		config:          config,
		codec:           codec,
		tokenRepository: tokenRepo,
		cache:           cache,
		auditLogUseCase: auditLogUC,
		metrics:         m,
	}
}

func (uc *TokenUseCase) ValidateToken(ctx context.Context, token string) (*entity.TokenPayload, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domainerrors.MissingToken()
	}

	payload, err := uc.codec.Decode(token)
	if err != nil {
		return nil, domainerrors.InvalidToken(err)
	}
	return payload, nil
}

// VerifySession consults the session cache before the token table. The
// cache maps a user to the digest of their current token and is written by
// Login inside the rotation. A miss only fills an absent key, so a lookup
// racing a login can never put back a token the login invalidated.
func (uc *TokenUseCase) VerifySession(ctx context.Context, token string) (*entity.TokenPayload, error) {
	payload, err := uc.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	key := constants.SessionKey(payload.Payload.ID)
	digest := entity.TokenDigest(token)
	if uc.cacheEnabled() {
		value, err := uc.cache.Get(ctx, key)
		switch {
		case err == nil && value == digest:
			uc.metrics.ObserveCache("hit")
			return payload, nil
		case err != nil && !uc.cache.IsNotFound(err):
			uc.metrics.ObserveCache("error")
			uc.logger.Warn("Session cache unavailable, falling back to database", zap.Error(err))
		default:
			uc.metrics.ObserveCache("miss")
		}
	}

	stored, err := uc.tokenRepository.FindByToken(ctx, token)
	if err != nil {
		return nil, domainerrors.Internal(fmt.Errorf("failed to find token: %w", err))
	}

	now := uc.config.Now()
	switch {
	case stored == nil, stored.UserID != payload.Payload.ID:
		return nil, domainerrors.InvalidToken(errTokenUnknown)
	case !stored.IsValid:
		uc.denyAccess(ctx, stored, errTokenRevoked)
		return nil, domainerrors.InvalidToken(errTokenRevoked)
	case uc.config.EnforceExpiry && !stored.Active(now):
		uc.denyAccess(ctx, stored, errTokenExpired)
		return nil, domainerrors.InvalidToken(errTokenExpired)
	}

	ttl := uc.config.CacheTTL
	if remaining := stored.Remaining(now); uc.config.EnforceExpiry && remaining < ttl {
		ttl = remaining
	}
	if uc.cacheEnabled() && ttl > 0 {
		if _, err := uc.cache.SetNX(ctx, key, digest, ttl); err != nil {
			uc.logger.Warn("Failed to cache session", zap.Uint("user_id", stored.UserID), zap.Error(err))
		}
	}

	return payload, nil
}

func (uc *TokenUseCase) cacheEnabled() bool {
	return uc.config.CacheTTL > 0
}

func (uc *TokenUseCase) denyAccess(ctx context.Context, stored *entity.SessionToken, reason error) {
	userID := stored.UserID
	_ = uc.auditLogUseCase.AddLog(ctx, entity.AuditLogTypeAccessDenied, map[string]interface{}{
		"token_id": stored.ID,
		"reason":   reason.Error(),
	}, &userID)
}
