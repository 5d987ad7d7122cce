package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// GenerateNoteGUID creates a stable ID for a word's flashcard note.
// Format: sb_md5(lowercased word)[:12]. Re-exporting the same word yields
// the same GUID, so Anki updates the note instead of duplicating it.
func GenerateNoteGUID(word string) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(word))))
	return fmt.Sprintf("sb_%s", hex.EncodeToString(hash[:])[:12])
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is a letter or digit in any script
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
