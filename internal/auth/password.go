package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	hashIters  = 310000
	hashKeyLen = 32
)

// GenerateSalt returns a fresh hex-encoded salt from the crypto RNG.
func GenerateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashPassword derives a hex digest with PBKDF2-SHA256. Deterministic for a
// given password/salt pair, which login relies on for comparison.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIters, hashKeyLen, sha256.New)
	return hex.EncodeToString(key)
}
