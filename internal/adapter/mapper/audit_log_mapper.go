package mapper

import (
	"encoding/json"

	"github.com/HYKY/hyky-services/internal/domain/entity"
	"github.com/HYKY/hyky-services/internal/infrastructure/db/model"
	"gorm.io/datatypes"
)

func AuditLogToModel(l *entity.AuditLog) (*model.AuditLogModel, error) {
	content := datatypes.JSON("{}")
	if l.Content != nil {
		raw, err := json.Marshal(l.Content)
		if err != nil {
			return nil, err
		}
		content = datatypes.JSON(raw)
	}

	return &model.AuditLogModel{
		ID:        l.ID,
		UserID:    l.UserID,
		Type:      string(l.Type),
		Content:   content,
		CreatedAt: l.CreatedAt,
	}, nil
}

// AuditLogFromModel converts a row. Undecodable content yields an empty map.
func AuditLogFromModel(m *model.AuditLogModel) *entity.AuditLog {
	content := map[string]interface{}{}
	if len(m.Content) > 0 {
		_ = json.Unmarshal(m.Content, &content)
	}

	return &entity.AuditLog{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      entity.AuditLogType(m.Type),
		Content:   content,
		CreatedAt: m.CreatedAt,
	}
}
