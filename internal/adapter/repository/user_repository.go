package repository

import (
	"context"
	"errors"

	"github.com/HYKY/hyky-services/internal/adapter/mapper"
	"github.com/HYKY/hyky-services/internal/domain/entity"
	"github.com/HYKY/hyky-services/internal/domain/repository"
	"github.com/HYKY/hyky-services/internal/infrastructure/db/model"
	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a gorm backed UserRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Role.Permissions").
		Preload("Groups").
		Preload("Attributes")
}

// FindByIdentifier skips users flagged as deleted.
func (r *UserRepositoryImpl) FindByIdentifier(ctx context.Context, id entity.Identifier) (*entity.User, error) {
	column := "username"
	if id.IsEmail() {
		column = "email"
	}

	var userModel model.UserModel
	err := r.withAssociations(ctx).
		Where(column+" = ? AND deleted = ?", id.Value, false).
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return mapper.UserFromModel(&userModel), nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.withAssociations(ctx).First(&userModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return mapper.UserFromModel(&userModel), nil
}
