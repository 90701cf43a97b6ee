package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SessionToken is an issued token. At most one per user is valid.
type SessionToken struct {
	ID        uint
	Token     string
	UserID    uint
	ExpiresAt int64
	IsValid   bool
	CreatedAt time.Time
}

// NewSessionToken creates a valid token row for a payload signed into token.
func NewSessionToken(userID uint, token string, payload *TokenPayload) *SessionToken {
	return &SessionToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: payload.Expires,
		IsValid:   true,
		CreatedAt: time.Unix(payload.Created, 0).UTC(),
	}
}

// Active reports whether the token is valid and unexpired at now.
func (t *SessionToken) Active(now time.Time) bool {
	return t.IsValid && now.Unix() < t.ExpiresAt
}

// Remaining returns how long the token stays unexpired after now.
func (t *SessionToken) Remaining(now time.Time) time.Duration {
	d := time.Unix(t.ExpiresAt, 0).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// TokenDigest returns the hex sha256 of a signed token. Lookups and cache
// entries use it instead of the token itself.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
