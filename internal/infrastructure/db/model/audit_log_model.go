package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLogModel is the audit_logs table.
type AuditLogModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id,omitempty"`
	Type      string         `gorm:"size:50;not null;index" json:"type"`
	Content   datatypes.JSON `gorm:"type:jsonb" json:"content"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}
