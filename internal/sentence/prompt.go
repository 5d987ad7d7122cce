package sentence

import (
	"fmt"
	"strings"
)

const systemPrompt = "You write short example sentences for a children's spelling bee. " +
	"Use simple, friendly vocabulary. Answer with exactly one sentence and nothing else."

func userPrompt(word, partOfSpeech string) string {
	if partOfSpeech == "" {
		return fmt.Sprintf("Write one sentence that uses the word '%s'.", word)
	}
	return fmt.Sprintf("Write one sentence that uses the word '%s' as a %s.", word, partOfSpeech)
}

// cleanSentence trims model output down to a single line without wrapping
// quotes and checks that the word is present.
func cleanSentence(raw, word string) (string, error) {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.Trim(s, "\"“”")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty sentence for %q", word)
	}
	if !strings.Contains(strings.ToLower(s), strings.ToLower(word)) {
		return "", fmt.Errorf("%w: %q", ErrWordMissing, s)
	}
	return s, nil
}
