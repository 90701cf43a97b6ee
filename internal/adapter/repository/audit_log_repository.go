package repository

import (
	"context"
	"fmt"

	"github.com/HYKY/hyky-services/internal/adapter/mapper"
	"github.com/HYKY/hyky-services/internal/domain/entity"
	"github.com/HYKY/hyky-services/internal/domain/repository"
	"github.com/HYKY/hyky-services/internal/infrastructure/db/model"
	"gorm.io/gorm"
)

type AuditLogRepositoryImpl struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a gorm backed AuditLogRepository.
func NewAuditLogRepository(db *gorm.DB) repository.AuditLogRepository {
	return &AuditLogRepositoryImpl{db: db}
}

func (r *AuditLogRepositoryImpl) Create(ctx context.Context, log *entity.AuditLog) error {
	auditLogModel, err := mapper.AuditLogToModel(log)
	if err != nil {
		return fmt.Errorf("failed to encode audit content: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(auditLogModel).Error; err != nil {
		return err
	}

	log.ID = auditLogModel.ID
	log.CreatedAt = auditLogModel.CreatedAt
	return nil
}

func (r *AuditLogRepositoryImpl) ListByUserID(ctx context.Context, userID uint, page, limit int) ([]*entity.AuditLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	query := r.db.WithContext(ctx).
		Model(&model.AuditLogModel{}).
		Where("user_id = ?", userID).
		Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []model.AuditLogModel
	if err := query.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*entity.AuditLog, len(models))
	for i := range models {
		logs[i] = mapper.AuditLogFromModel(&models[i])
	}
	return logs, total, nil
}
