package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// HashPassword derives a salted SHA-256 hash for rate card protection and
// returns the hex-encoded hash and salt. The rate card is guarded at the
// storage boundary only; this is a deterrent against casual edits, not an
// authentication system.
func HashPassword(password string) (hash, salt string, err error) {
	saltBytes := make([]byte, 16)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = hex.EncodeToString(saltBytes)
	return hashWithSalt(password, salt), salt, nil
}

// VerifyPassword reports whether the password matches the stored hash+salt.
// An empty stored hash means the rate card is unprotected and always verifies.
func VerifyPassword(password, salt, storedHash string) bool {
	if storedHash == "" {
		return true
	}
	computed := hashWithSalt(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

func hashWithSalt(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
