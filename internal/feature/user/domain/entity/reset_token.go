package entity

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// ResetTokenBytes is the entropy of a password reset token before hex encoding.
	ResetTokenBytes = 20
	// ResetTokenTTL is the fixed validity window of a reset token.
	ResetTokenTTL = time.Hour
)

// NewResetToken returns a random hex token and its absolute expiry.
func NewResetToken(now time.Time) (string, time.Time, error) {
	b := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(b), now.Add(ResetTokenTTL), nil
}

// WithResetToken returns a copy holding token until expiresAt.
// Any previously issued token is overwritten.
func (u User) WithResetToken(token string, expiresAt time.Time) User {
	u.ResetPasswordToken = &token
	u.ResetPasswordExpires = &expiresAt
	return u
}

// ClearResetToken returns a copy with both reset fields removed.
func (u User) ClearResetToken() User {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
	return u
}

// IsResetTokenValid reports whether token matches the stored one and now is before its expiry.
func (u User) IsResetTokenValid(token string, now time.Time) bool {
	if token == "" || u.ResetPasswordToken == nil || u.ResetPasswordExpires == nil {
		return false
	}
	match := subtle.ConstantTimeCompare([]byte(*u.ResetPasswordToken), []byte(token)) == 1
	return match && now.Before(*u.ResetPasswordExpires)
}
