// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"account_backend/internal/shared/apperr"
)

// DefaultCost matches the 10 rounds the stored hashes were created with.
const DefaultCost = 10

// ErrPasswordTooLong is returned for passwords over bcrypt's 72-byte input limit.
// Length rules count characters, so multi-byte passwords can reach it.
var ErrPasswordTooLong = apperr.New(apperr.KindBadRequest, "password is too long")

// Hasher hashes passwords at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher. Out-of-range costs fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt hash of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain matches hash.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
