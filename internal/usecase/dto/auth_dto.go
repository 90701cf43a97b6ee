package dto

import (
	"time"

	"github.com/HYKY/hyky-services/internal/domain/entity"
)

// LoginParams are the inputs of a login attempt.
type LoginParams struct {
	Identifier entity.Identifier
	Password   string
	IP         string
	UserAgent  string
}

// LoginResponse is the result body of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// AuditLogPage is one page of a user's audit records.
type AuditLogPage struct {
	Items []*entity.AuditLog `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// SessionsRevokedEvent announces that a login invalidated earlier
// sessions. Digests are entity.TokenDigest values, never the tokens
// themselves.
type SessionsRevokedEvent struct {
	UserID    uint      `json:"user_id"`
	Digests   []string  `json:"token_digests"`
	RevokedAt time.Time `json:"revoked_at"`
}
