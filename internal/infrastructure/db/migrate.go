package db

import (
	"github.com/HYKY/hyky-services/internal/infrastructure/db/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := backfillTokenDigests(db, logger); err != nil {
		logger.Error("Failed to backfill token digests", zap.Error(err))
		return err
	}

	logger.Info("Running GORM auto-migrations...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	logger.Info("Creating custom indexes...")
	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes gorm tags cannot express.
func createCustomIndexes(db *gorm.DB) error {
	// One valid token per user.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_valid_token_per_user ON user_tokens (user_id) WHERE is_valid`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_user_tokens_expires_at ON user_tokens (expires_at) WHERE is_valid`).Error; err != nil {
		return err
	}

	return nil
}

// backfillTokenDigests prepares a user_tokens table created before tokens
// were indexed by digest, so AutoMigrate can add the not null column.
func backfillTokenDigests(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	tokens := &model.SessionTokenModel{}
	if !migrator.HasTable(tokens) || migrator.HasColumn(tokens, "TokenDigest") {
		return nil
	}

	logger.Info("Backfilling token digests...")
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`ALTER TABLE user_tokens ADD COLUMN token_digest char(64)`).Error; err != nil {
			return err
		}
		if err := tx.Exec(`UPDATE user_tokens SET token_digest = encode(sha256(convert_to(token, 'UTF8')), 'hex')`).Error; err != nil {
			return err
		}
		return tx.Exec(`DROP INDEX IF EXISTS idx_user_tokens_token`).Error
	})
}
