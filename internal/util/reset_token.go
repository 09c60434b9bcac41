package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const resetTokenBytes = 20

// GenerateResetToken mints a single-use password reset secret. The plaintext
// is what gets emailed to the user; only the digest is ever persisted, keyed
// so the confirm step can look the pending reset up by hash.
func GenerateResetToken() (plaintext, digest string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plaintext = hex.EncodeToString(buf)
	return plaintext, HashResetToken(plaintext), nil
}

// HashResetToken maps a presented token to its stored form.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
