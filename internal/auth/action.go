package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Lifetimes for the single-use tokens sent over email.
const (
	VerificationTTL = 24 * time.Hour
	ResetTTL        = time.Hour
)

// NewActionToken returns a random token for email verification and
// password reset links.
func NewActionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
