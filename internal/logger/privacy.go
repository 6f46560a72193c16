package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

var hashSalt string

func init() {
	// In production, set LOG_HASH_SALT so hashes are not guessable.
	hashSalt = os.Getenv("LOG_HASH_SALT")
	if hashSalt == "" {
		hashSalt = "default-salt-change-in-production"
	}
}

// HashEmail creates a privacy-preserving hash of an account email.
// Log lines can correlate actions per account without exposing the address.
func HashEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := sha256.Sum256([]byte(normalized + ":" + hashSalt))
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeText redacts user-provided text while preserving length information.
func SanitizeText(text string) string {
	if text == "" {
		return "<empty>"
	}
	if len(text) <= 10 {
		return fmt.Sprintf("<%d chars>", len(text))
	}
	return fmt.Sprintf("%s...<%d chars>", text[:3], len(text))
}
