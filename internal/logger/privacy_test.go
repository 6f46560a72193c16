package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashEmail(t *testing.T) {
	t.Run("produces consistent hash for same email", func(t *testing.T) {
		require.Equal(t, HashEmail("ana@example.com"), HashEmail("ana@example.com"))
	})

	t.Run("ignores case and surrounding whitespace", func(t *testing.T) {
		require.Equal(t, HashEmail("ana@example.com"), HashEmail("  ANA@Example.com "))
	})

	t.Run("produces different hashes for different emails", func(t *testing.T) {
		require.NotEqual(t, HashEmail("ana@example.com"), HashEmail("luis@example.com"))
	})

	t.Run("produces 8 character hash", func(t *testing.T) {
		require.Len(t, HashEmail("ana@example.com"), 8)
	})

	t.Run("changes hash when salt changes", func(t *testing.T) {
		originalSalt := hashSalt
		defer func() { hashSalt = originalSalt }()

		hash1 := HashEmail("ana@example.com")
		hashSalt = "different-salt"
		hash2 := HashEmail("ana@example.com")

		require.NotEqual(t, hash1, hash2)
	})
}

func TestSanitizeText(t *testing.T) {
	t.Run("redacts empty text", func(t *testing.T) {
		require.Equal(t, "<empty>", SanitizeText(""))
	})

	t.Run("shows length for short text", func(t *testing.T) {
		require.Equal(t, "<5 chars>", SanitizeText("short"))
	})

	t.Run("shows prefix and length for longer text", func(t *testing.T) {
		result := SanitizeText("this is a long text")
		require.Contains(t, result, "thi...")
		require.Contains(t, result, "19 chars")
	})
}
