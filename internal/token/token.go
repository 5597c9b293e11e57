// Package token issues opaque bearer access tokens.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const entropyBytes = 32

// Issue returns a URL-safe random token with 256 bits of entropy. Tokens
// carry no structure, identity, or expiry.
func Issue() (string, error) {
	raw := make([]byte, entropyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
