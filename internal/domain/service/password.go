package service

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordSeparator joins the bcrypt hash and the server salt in a stored
// password.
const PasswordSeparator = "§"

// PasswordHasher hashes and verifies passwords stored as "hash§salt".
type PasswordHasher struct {
	salt string
	cost int

	decoyOnce sync.Once
	decoy     []byte
}

// NewPasswordHasher creates a hasher bound to the server salt. A cost
// outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewPasswordHasher(salt string, cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{salt: salt, cost: cost}
}

// Hash returns the stored form of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash) + PasswordSeparator + h.salt, nil
}

// Verify reports whether password matches stored and stored carries the
// current salt. Every call runs one bcrypt comparison.
func (h *PasswordHasher) Verify(stored, password string) bool {
	hash, salt, ok := strings.Cut(stored, PasswordSeparator)
	if !ok || salt != h.salt || password == "" {
		h.Reject(password)
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Reject runs a comparison against a fixed hash of the configured cost, so
// a login for an unknown account takes as long as a wrong password.
func (h *PasswordHasher) Reject(password string) {
	_ = bcrypt.CompareHashAndPassword(h.decoyHash(), []byte(password))
}

func (h *PasswordHasher) decoyHash() []byte {
	h.decoyOnce.Do(func() {
		h.decoy, _ = bcrypt.GenerateFromPassword([]byte("decoy"+PasswordSeparator+h.salt), h.cost)
	})
	return h.decoy
}
