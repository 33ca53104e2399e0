package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const sessionTokenBytes = 32

// NewSessionToken returns a 64-character hex token with 256 bits of entropy.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
