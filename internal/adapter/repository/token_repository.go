package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/HYKY/hyky-services/internal/adapter/mapper"
	"github.com/HYKY/hyky-services/internal/domain/entity"
	"github.com/HYKY/hyky-services/internal/domain/repository"
	"github.com/HYKY/hyky-services/internal/infrastructure/db/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenRepositoryImpl struct {
	db *gorm.DB
}

// NewTokenRepository creates a gorm backed TokenRepository.
func NewTokenRepository(db *gorm.DB) repository.TokenRepository {
	return &TokenRepositoryImpl{db: db}
}

func (r *TokenRepositoryImpl) FindByToken(ctx context.Context, token string) (*entity.SessionToken, error) {
	var tokenModel model.SessionTokenModel
	if err := r.db.WithContext(ctx).
		Where("token_digest = ?", entity.TokenDigest(token)).
		First(&tokenModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if tokenModel.Token != token {
		return nil, nil
	}

	return mapper.SessionTokenFromModel(&tokenModel), nil
}

// Rotate locks the owning user row so concurrent logins of the same user
// serialize here. The partial unique index on user_tokens rejects a second
// valid row should the lock ever be bypassed.
func (r *TokenRepositoryImpl) Rotate(
	ctx context.Context,
	token *entity.SessionToken,
	beforeCommit func(ctx context.Context) error,
) ([]string, error) {
	var invalidated []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner model.UserModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&owner, token.UserID).Error; err != nil {
			return fmt.Errorf("failed to lock user %d: %w", token.UserID, err)
		}

		valid := tx.Model(&model.SessionTokenModel{}).
			Where("user_id = ? AND is_valid", token.UserID).
			Session(&gorm.Session{})
		if err := valid.Pluck("token", &invalidated).Error; err != nil {
			return fmt.Errorf("failed to list valid tokens: %w", err)
		}
		if err := valid.Update("is_valid", false).Error; err != nil {
			return fmt.Errorf("failed to invalidate tokens: %w", err)
		}

		tokenModel := mapper.SessionTokenToModel(token)
		tokenModel.IsValid = true
		if err := tx.Create(tokenModel).Error; err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}

		if beforeCommit != nil {
			if err := beforeCommit(ctx); err != nil {
				return fmt.Errorf("failed before commit: %w", err)
			}
		}

		token.ID = tokenModel.ID
		token.IsValid = true
		token.CreatedAt = tokenModel.CreatedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	return invalidated, nil
}

func (r *TokenRepositoryImpl) ListByUserID(ctx context.Context, userID uint) ([]*entity.SessionToken, error) {
	var models []model.SessionTokenModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	return mapper.SessionTokensFromModels(models), nil
}
