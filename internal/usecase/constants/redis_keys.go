package constants

import (
	"strconv"

	"github.com/HYKY/hyky-services/internal/domain/entity"
)

const (
	// SessionKeyPrefix prefixes the cache key holding the digest of a
	// user's current token.
	SessionKeyPrefix = "session:current:"

	// SessionsRevokedChannel carries a SessionsRevokedEvent per login that
	// invalidated earlier tokens.
	SessionsRevokedChannel = "hyky:sessions:revoked"
)

// SessionKey returns the cache key of userID's current session.
func SessionKey(userID uint) string {
	return SessionKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

// TokenDigests maps entity.TokenDigest over tokens.
func TokenDigests(tokens []string) []string {
	digests := make([]string, len(tokens))
	for i, t := range tokens {
		digests[i] = entity.TokenDigest(t)
	}
	return digests
}
