package usecase

import (
	"context"

	"github.com/HYKY/hyky-services/internal/domain/entity"
	"github.com/HYKY/hyky-services/internal/domain/repository"
	"github.com/HYKY/hyky-services/internal/usecase/dto"
	"github.com/HYKY/hyky-services/internal/usecase/interfaces"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

type AuditLogUseCase struct {
	logger          *zap.Logger
	auditRepository repository.AuditLogRepository
}

var _ interfaces.AuditLogUseCase = (*AuditLogUseCase)(nil)

func NewAuditLogUseCase(logger *zap.Logger, auditRepo repository.AuditLogRepository) *AuditLogUseCase {
	return &AuditLogUseCase{
		logger:          logger,
		auditRepository: auditRepo,
	}
}

// AddLog stores an audit record. Failures are logged and returned.
func (uc *AuditLogUseCase) AddLog(ctx context.Context, logType entity.AuditLogType, content map[string]interface{}, userID *uint) error {
	auditLog := entity.NewAuditLog(userID, logType, content)

	if err := uc.auditRepository.Create(ctx, auditLog); err != nil {
		uc.logger.Error("Failed to store audit log",
			zap.String("type", string(logType)),
			zap.Any("content", content),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (uc *AuditLogUseCase) GetUserLogs(ctx context.Context, userID uint, page, limit int) (*dto.AuditLogPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	logs, total, err := uc.auditRepository.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		uc.logger.Error("Failed to list audit logs", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.AuditLogPage{Items: logs, Total: total, Page: page, Limit: limit}, nil
}
