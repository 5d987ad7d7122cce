package sentence

import (
	"context"
	"fmt"
	"strings"
)

// GenericTemplate is used when the part of speech is empty or unknown.
const GenericTemplate = `Please spell the word "%s".`

// posTemplates is checked in order against the lowercased part of speech.
var posTemplates = []struct {
	prefix string
	format string
}{
	{"noun", `We talked about the %s for a long time.`},
	{"verb", `She wanted to %s before the sun went down.`},
	{"adjective", `Everyone agreed that it looked very %s.`},
	{"adverb", `He finished the whole task %s.`},
}

// Template fills fixed sentences keyed by part of speech. It needs no
// network and never fails.
type Template struct{}

// NewTemplate creates a template provider
func NewTemplate() *Template {
	return &Template{}
}

// Render returns the template sentence for word.
func (t *Template) Render(word, partOfSpeech string) string {
	pos := strings.ToLower(strings.TrimSpace(partOfSpeech))
	if pos != "" {
		for _, tmpl := range posTemplates {
			if strings.HasPrefix(pos, tmpl.prefix) {
				return fmt.Sprintf(tmpl.format, word)
			}
		}
	}
	return fmt.Sprintf(GenericTemplate, word)
}

// Generate implements Provider
func (t *Template) Generate(_ context.Context, word, partOfSpeech string) (string, error) {
	return t.Render(word, partOfSpeech), nil
}

// Sentence lets the template serve the resolver directly
func (t *Template) Sentence(_ context.Context, word, partOfSpeech string) string {
	return t.Render(word, partOfSpeech)
}

// Name returns the provider name
func (t *Template) Name() string {
	return ProviderTemplate
}
