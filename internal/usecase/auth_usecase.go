package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/HYKY/hyky-services/internal/domain/entity"
	domainerrors "github.com/HYKY/hyky-services/internal/domain/errors"
	"github.com/HYKY/hyky-services/internal/domain/repository"
	"github.com/HYKY/hyky-services/internal/domain/service"
	"github.com/HYKY/hyky-services/internal/infrastructure/metrics"
	"github.com/HYKY/hyky-services/internal/usecase/constants"
	"github.com/HYKY/hyky-services/internal/usecase/dto"
	"github.com/HYKY/hyky-services/internal/usecase/interfaces"
	"github.com/HYKY/hyky-services/pkg/messaging"
	"go.uber.org/zap"
)

// AuthConfig holds login settings.
type AuthConfig struct {
	// TokenTTL is the lifetime of an issued token.
	TokenTTL time.Duration
	// CacheTTL caps how long the session cache remembers the new token.
	// Zero disables the cache.
	CacheTTL time.Duration
	// Now replaces time.Now when set.
	Now func() time.Time
}

type AuthUseCase struct {
	logger          *zap.Logger
	config          AuthConfig
	codec           *service.TokenCodec
	hasher          *service.PasswordHasher
	userRepository  repository.UserRepository
	tokenRepository repository.TokenRepository
	cache           repository.CacheRepository
	auditLogUseCase interfaces.AuditLogUseCase
	metrics         *metrics.Metrics
	publisher       messaging.Publisher
}

var _ interfaces.AuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(
	logger *zap.Logger,
	config AuthConfig,
	codec *service.TokenCodec,
	hasher *service.PasswordHasher,
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	cache repository.CacheRepository,
	auditLogUC interfaces.AuditLogUseCase,
	m *metrics.Metrics,
	publisher messaging.Publisher,
) *AuthUseCase {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &AuthUseCase{
		logger:          logger,
		config:          config,
		codec:           codec,
		hasher:          hasher,
		userRepository:  userRepo,
		tokenRepository: tokenRepo,
		cache:           cache,
		auditLogUseCase: auditLogUC,
		metrics:         m,
		publisher:       publisher,
	}
}

// Login verifies the credentials, then atomically invalidates the user's
// tokens and stores a new one.
func (uc *AuthUseCase) Login(ctx context.Context, params dto.LoginParams) (string, error) {
	if params.Identifier.Value == "" {
		uc.metrics.ObserveLogin(metrics.LoginMissingCredentials)
		return "", domainerrors.MissingCredentials()
	}

	user, err := uc.userRepository.FindByIdentifier(ctx, params.Identifier)
	if err != nil {
		uc.metrics.ObserveLogin(metrics.LoginError)
		return "", domainerrors.Internal(fmt.Errorf("failed to find user: %w", err))
	}
	if user == nil {
		uc.hasher.Reject(params.Password)
		uc.rejectLogin(ctx, nil, params, "unknown identifier")
		return "", domainerrors.InvalidCredentials()
	}

	if !uc.hasher.Verify(user.Password, params.Password) {
		uc.rejectLogin(ctx, &user.ID, params, "password mismatch")
		return "", domainerrors.InvalidCredentials()
	}

	payload := entity.NewTokenPayload(user.Profile(), uc.config.Now(), uc.config.TokenTTL)
	signed, err := uc.codec.Encode(payload)
	if err != nil {
		uc.metrics.ObserveLogin(metrics.LoginError)
		return "", domainerrors.Internal(err)
	}

	invalidated, err := uc.tokenRepository.Rotate(ctx, entity.NewSessionToken(user.ID, signed, payload), uc.cacheSession(user.ID, signed))
	if err != nil {
		uc.metrics.ObserveLogin(metrics.LoginError)
		return "", domainerrors.Internal(fmt.Errorf("failed to rotate tokens: %w", err))
	}

	if len(invalidated) > 0 {
		uc.announceRevoked(ctx, user.ID, invalidated)
	}

	_ = uc.auditLogUseCase.AddLog(ctx, entity.AuditLogTypeLoginSuccess, map[string]interface{}{
		"identifier_kind": params.Identifier.Kind.String(),
		"ip":              params.IP,
		"user_agent":      params.UserAgent,
		"invalidated":     len(invalidated),
	}, &user.ID)

	uc.metrics.ObserveLogin(metrics.LoginSuccess)
	uc.logger.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Int("invalidated_tokens", len(invalidated)),
	)

	return signed, nil
}

func (uc *AuthUseCase) rejectLogin(ctx context.Context, userID *uint, params dto.LoginParams, reason string) {
	uc.metrics.ObserveLogin(metrics.LoginInvalidCredentials)
	uc.logger.Info("Login rejected",
		zap.String("identifier", params.Identifier.String()),
		zap.String("reason", reason),
		zap.String("ip", params.IP),
	)

	_ = uc.auditLogUseCase.AddLog(ctx, entity.AuditLogTypeLoginFailed, map[string]interface{}{
		"identifier": params.Identifier.Value,
		"reason":     reason,
		"ip":         params.IP,
		"user_agent": params.UserAgent,
	}, userID)
}

// cacheSession points the user's session key at token. It runs inside the
// rotation so the key never names a token the database has invalidated,
// and a cache failure aborts the login.
func (uc *AuthUseCase) cacheSession(userID uint, token string) func(ctx context.Context) error {
	ttl := uc.config.CacheTTL
	if ttl <= 0 {
		return nil
	}
	if uc.config.TokenTTL > 0 && uc.config.TokenTTL < ttl {
		ttl = uc.config.TokenTTL
	}

	return func(ctx context.Context) error {
		return uc.cache.Set(ctx, constants.SessionKey(userID), entity.TokenDigest(token), ttl)
	}
}

// announceRevoked publishes the revoked sessions. A nil publisher
// disables it and a failure only logs.
func (uc *AuthUseCase) announceRevoked(ctx context.Context, userID uint, tokens []string) {
	if uc.publisher == nil {
		return
	}

	event := dto.SessionsRevokedEvent{
		UserID:    userID,
		Digests:   constants.TokenDigests(tokens),
		RevokedAt: uc.config.Now(),
	}
	if err := uc.publisher.Publish(ctx, constants.SessionsRevokedChannel, event); err != nil {
		uc.logger.Warn("Failed to publish revoked sessions",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
	}
}
