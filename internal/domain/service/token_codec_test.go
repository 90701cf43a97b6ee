package service

import (
	"strings"
	"testing"
	"time"

	"github.com/HYKY/hyky-services/internal/domain/entity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issued = time.Unix(1_700_000_000, 0)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func samplePayload() *entity.TokenPayload {
	profile := entity.UserProfile{
		ID:        1,
		UUID:      "6f1c1d4e-0f5b-4c0a-9e1f-2b1c3d4e5f60",
		CreatedAt: time.Date(2018, 5, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2018, 5, 2, 12, 0, 0, 0, time.UTC),
		Username:  "admin",
		Email:     "admin@hyky.games",
		Role: &entity.RoleProfile{
			Name:        "Administrator",
			Slug:        "administrator",
			Permissions: []string{"read", "write"},
		},
		Groups:     map[string]string{"staff": "Staff"},
		Attributes: map[string]string{"nickname": "Boss"},
	}
	return entity.NewTokenPayload(profile, issued, 604800*time.Second)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("s3cr3t", WithClock(fixedClock(issued.Add(time.Hour))))
	payload := samplePayload()

	token, err := codec.Encode(payload)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestTokenCodec_EncodeIsUnique(t *testing.T) {
	codec := NewTokenCodec("s3cr3t")
	payload := samplePayload()

	first, err := codec.Encode(payload)
	require.NoError(t, err)
	second, err := codec.Encode(payload)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenCodec_OtherSecretFails(t *testing.T) {
	token, err := NewTokenCodec("s3cr3t").Encode(samplePayload())
	require.NoError(t, err)

	_, err = NewTokenCodec("rotated", WithClock(fixedClock(issued))).Decode(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestTokenCodec_RejectsMalformed(t *testing.T) {
	codec := NewTokenCodec("s3cr3t", WithClock(fixedClock(issued)))

	for _, token := range []string{"", "abc", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
		payload, err := codec.Decode(token)
		assert.Error(t, err, token)
		assert.Nil(t, payload)
	}
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.MapClaims{"payload": map[string]interface{}{"username": "admin"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cr3t"))
	require.NoError(t, err)

	_, err = NewTokenCodec("s3cr3t").Decode(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestTokenCodec_Expiry(t *testing.T) {
	token, err := NewTokenCodec("s3cr3t").Encode(samplePayload())
	require.NoError(t, err)

	late := fixedClock(issued.Add(8 * 24 * time.Hour))

	_, err = NewTokenCodec("s3cr3t", WithClock(late)).Decode(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	decoded, err := NewTokenCodec("s3cr3t", WithClock(late), WithoutExpiry()).Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", decoded.Payload.Username)
}
