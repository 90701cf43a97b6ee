package interfaces

import (
	"context"

	"github.com/HYKY/hyky-services/internal/domain/entity"
	"github.com/HYKY/hyky-services/internal/usecase/dto"
)

// AuditLogUseCase records and lists audit events.
type AuditLogUseCase interface {
	AddLog(ctx context.Context, logType entity.AuditLogType, content map[string]interface{}, userID *uint) error

	GetUserLogs(ctx context.Context, userID uint, page, limit int) (*dto.AuditLogPage, error)
}
