package batch

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateWord checks that a word given on the command line is worth a
// dictionary request. Word list entries are not validated.
func ValidateWord(word string) error {
	if strings.TrimSpace(word) == "" {
		return fmt.Errorf("word cannot be empty")
	}

	for _, r := range word {
		if unicode.IsControl(r) {
			return fmt.Errorf("word must not contain control characters")
		}
	}

	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}

	if !hasLetter {
		return fmt.Errorf("word must contain at least one letter")
	}

	return nil
}
