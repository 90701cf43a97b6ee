package service

import (
	"fmt"
	"time"

	"github.com/HYKY/hyky-services/internal/domain/entity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenClaims is the JSON body of a signed token.
type tokenClaims struct {
	Payload entity.UserProfile `json:"payload"`
	Created int64              `json:"created"`
	Expires int64              `json:"expires"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 tokens with the server salt.
type TokenCodec struct {
	secret        []byte
	enforceExpiry bool
	now           func() time.Time
}

// TokenCodecOption configures a TokenCodec.
type TokenCodecOption func(*TokenCodec)

// WithClock replaces time.Now when checking expiry.
func WithClock(now func() time.Time) TokenCodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// WithoutExpiry accepts tokens past their exp claim.
func WithoutExpiry() TokenCodecOption {
	return func(c *TokenCodec) {
		c.enforceExpiry = false
	}
}

// NewTokenCodec creates a codec keyed by secret.
func NewTokenCodec(secret string, opts ...TokenCodecOption) *TokenCodec {
	c := &TokenCodec{
		secret:        []byte(secret),
		enforceExpiry: true,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode signs p. Each call carries a fresh jti, so two tokens issued in
// the same second still differ.
func (c *TokenCodec) Encode(p *entity.TokenPayload) (string, error) {
	claims := tokenClaims{
		Payload: p.Payload,
		Created: p.Created,
		Expires: p.Expires,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.Payload.UUID,
			IssuedAt:  jwt.NewNumericDate(time.Unix(p.Created, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(p.Expires, 0)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and, unless disabled, the expiry of token.
func (c *TokenCodec) Decode(token string) (*entity.TokenPayload, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	}
	if c.enforceExpiry {
		opts = append(opts, jwt.WithExpirationRequired())
	} else {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return &entity.TokenPayload{
		Payload: claims.Payload,
		Created: claims.Created,
		Expires: claims.Expires,
	}, nil
}
