package entity

import "time"

// TokenPayload is the decoded content of a signed token.
type TokenPayload struct {
	Payload UserProfile `json:"payload"`
	// Created and Expires are epoch seconds.
	Created int64 `json:"created"`
	Expires int64 `json:"expires"`
}

// NewTokenPayload builds the payload for a token issued at now.
func NewTokenPayload(profile UserProfile, now time.Time, ttl time.Duration) *TokenPayload {
	return &TokenPayload{
		Payload: profile,
		Created: now.Unix(),
		Expires: now.Add(ttl).Unix(),
	}
}

func (p *TokenPayload) IssuedAt() time.Time {
	return time.Unix(p.Created, 0).UTC()
}

func (p *TokenPayload) ExpiresAt() time.Time {
	return time.Unix(p.Expires, 0).UTC()
}
