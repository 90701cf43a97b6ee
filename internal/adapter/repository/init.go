package repository

import (
	domainrepo "github.com/HYKY/hyky-services/internal/domain/repository"
	"github.com/HYKY/hyky-services/internal/infrastructure/db"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InitRepositories builds every repository over the open connections.
func InitRepositories(database *gorm.DB, redisClient redis.Cmdable, logger *zap.Logger) *domainrepo.Repositories {
	return domainrepo.NewRepositories(
		NewUserRepository(database),
		NewTokenRepository(database),
		NewAuditLogRepository(database),
		db.NewRedisRepository(redisClient, logger),
	)
}
