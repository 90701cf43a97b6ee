package entity

import "time"

// AuditLogType classifies an audit record.
type AuditLogType string

const (
	AuditLogTypeLoginSuccess   AuditLogType = "LOGIN_SUCCESS"
	AuditLogTypeLoginFailed    AuditLogType = "LOGIN_FAILED"
	AuditLogTypeTokenValidated AuditLogType = "TOKEN_VALIDATED"
	AuditLogTypeAccessDenied   AuditLogType = "ACCESS_DENIED"
)

// AuditLog records a security relevant event.
type AuditLog struct {
	ID      uint                   `json:"id"`
	UserID  *uint                  `json:"user_id,omitempty"`
	Type    AuditLogType           `json:"type"`
	Content map[string]interface{} `json:"content"`

	CreatedAt time.Time `json:"created_at"`
}

// NewAuditLog creates an audit record stamped with the current time.
func NewAuditLog(userID *uint, logType AuditLogType, content map[string]interface{}) *AuditLog {
	return &AuditLog{
		UserID:    userID,
		Type:      logType,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// AddContentField sets key in the content map.
func (al *AuditLog) AddContentField(key string, value interface{}) {
	if al.Content == nil {
		al.Content = make(map[string]interface{})
	}
	al.Content[key] = value
}
