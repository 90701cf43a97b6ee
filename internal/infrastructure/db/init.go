// Package db wires the postgres and redis connections.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/HYKY/hyky-services/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infrastructure holds the open connections.
type Infrastructure struct {
	DB          *gorm.DB
	RedisClient *redis.Client
	logger      *zap.Logger
}

// NewInfrastructure connects to postgres and redis.
func NewInfrastructure(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	logger := cfg.Logger

	database, err := NewPostgresDB(ctx, Config{
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		SlowThreshold:   time.Duration(cfg.Database.SlowThreshold) * time.Millisecond,
		Debug:           cfg.Server.HTTP.Debug,
	}, logger)
	if err != nil {
		return nil, err
	}

	redisClient, err := NewRedisClient(ctx, RedisConfig{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		closeDB(database)
		return nil, err
	}

	logger.Info("Infrastructure initialized",
		zap.String("database", "PostgreSQL"),
		zap.String("cache", "Redis"),
	)

	return &Infrastructure{
		DB:          database,
		RedisClient: redisClient,
		logger:      logger,
	}, nil
}

// Ping checks that postgres and redis both answer.
func (i *Infrastructure) Ping(ctx context.Context) error {
	sqlDB, err := i.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	if err := i.RedisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes every connection.
func (i *Infrastructure) Close() error {
	if err := closeDB(i.DB); err != nil {
		return err
	}

	if i.RedisClient != nil {
		if err := i.RedisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis: %w", err)
		}
	}

	i.logger.Info("All infrastructure connections closed")
	return nil
}

func closeDB(database *gorm.DB) error {
	if database == nil {
		return nil
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
