package batch

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// CommentPrefix marks a line of the word list that is not a word.
const CommentPrefix = "#"

// ReadBatchFile reads a word list file. See ParseWords for the format.
func ReadBatchFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	return ReadWords(f)
}

// ReadWords reads a word list from r.
func ReadWords(r io.Reader) ([]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return ParseWords(string(content)), nil
}

// ParseWords returns the words of a list, one per line, in file order.
// Blank lines and lines starting with "#" are skipped; everything else is
// trimmed and kept verbatim, duplicates included.
func ParseWords(content string) []string {
	content = strings.TrimPrefix(content, "\ufeff")

	var words []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		if word := strings.TrimSpace(line); word != "" {
			words = append(words, word)
		}
	}
	return words
}
