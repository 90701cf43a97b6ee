package usecase

import (
	"time"

	"github.com/HYKY/hyky-services/internal/config"
	"github.com/HYKY/hyky-services/internal/domain/repository"
	"github.com/HYKY/hyky-services/internal/domain/service"
	"github.com/HYKY/hyky-services/internal/infrastructure/metrics"
	"github.com/HYKY/hyky-services/pkg/messaging"
	"go.uber.org/zap"
)

// UseCases holds every use case of the service.
type UseCases struct {
	Auth     *AuthUseCase
	Token    *TokenUseCase
	AuditLog *AuditLogUseCase
}

// SetupUseCases builds the use cases over repositories. The server salt
// from cfg keys both the token codec and the password hasher. publisher
// may be nil.
func SetupUseCases(
	logger *zap.Logger,
	cfg *config.Config,
	repositories *repository.Repositories,
	m *metrics.Metrics,
	publisher messaging.Publisher,
) *UseCases {
	var codecOpts []service.TokenCodecOption
	if !cfg.Auth.EnforceExpiry {
		codecOpts = append(codecOpts, service.WithoutExpiry())
	}
	codec := service.NewTokenCodec(cfg.Auth.Salt, codecOpts...)
	hasher := service.NewPasswordHasher(cfg.Auth.Salt, cfg.Auth.HashCost)

	auditLogUC := NewAuditLogUseCase(logger, repositories.AuditLog)

	tokenUC := NewTokenUseCase(
		logger,
		TokenConfig{
			CacheTTL:      time.Duration(cfg.Redis.TTL) * time.Second,
			EnforceExpiry: cfg.Auth.EnforceExpiry,
		},
		codec,
		repositories.Token,
		repositories.Cache,
		auditLogUC,
		m,
	)

	authUC := NewAuthUseCase(
		logger,
		AuthConfig{
			TokenTTL: cfg.TokenTTL(),
			CacheTTL: time.Duration(cfg.Redis.TTL) * time.Second,
		},
		codec,
		hasher,
		repositories.User,
		repositories.Token,
		repositories.Cache,
		auditLogUC,
		m,
		publisher,
	)

	return &UseCases{
		Auth:     authUC,
		Token:    tokenUC,
		AuditLog: auditLogUC,
	}
}
