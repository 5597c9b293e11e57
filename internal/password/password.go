// Package password derives and verifies salted password digests using
// PBKDF2-HMAC-SHA256. Both salt and digest travel as hex strings.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	keyBytes   = 32
	iterations = 100_000
)

// Derive hashes plaintext with the given hex salt. An empty salt means
// generate a fresh random one; the salt actually used is returned alongside
// the digest.
func Derive(plaintext, salt string) (digest, usedSalt string, err error) {
	if salt == "" {
		raw := make([]byte, saltBytes)
		if _, err := rand.Read(raw); err != nil {
			return "", "", fmt.Errorf("generate salt: %w", err)
		}
		salt = hex.EncodeToString(raw)
	}

	key := pbkdf2.Key([]byte(plaintext), []byte(salt), iterations, keyBytes, sha256.New)
	return hex.EncodeToString(key), salt, nil
}

// Verify recomputes the digest for plaintext under salt and compares it to
// expectedDigest in constant time.
func Verify(plaintext, salt, expectedDigest string) bool {
	digest, _, err := Derive(plaintext, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(expectedDigest)) == 1
}
