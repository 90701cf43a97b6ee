package repository

import (
	"context"

	"github.com/HYKY/hyky-services/internal/domain/entity"
)

// AuditLogRepository stores audit records.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error

	// ListByUserID pages through a user's records, newest first.
	ListByUserID(ctx context.Context, userID uint, page, limit int) ([]*entity.AuditLog, int64, error)
}
