package model

import "time"

// SessionTokenModel is the user_tokens table. A partial unique index keeps
// at most one valid row per user (see db.Migrate). Tokens carry the whole
// profile, so uniqueness and lookups go through the sha256 digest.
type SessionTokenModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Token       string `gorm:"type:text;not null" json:"token"`
	TokenDigest string `gorm:"type:char(64);not null;uniqueIndex" json:"-"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	ExpiresAt   int64  `gorm:"not null" json:"expires_at"`
	IsValid     bool   `gorm:"not null" json:"is_valid"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SessionTokenModel) TableName() string {
	return "user_tokens"
}
