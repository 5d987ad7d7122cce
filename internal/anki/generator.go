package anki

import (
	"encoding/csv"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"

	"codeberg.org/snonux/spellbee/internal/lexicon"
)

// Card represents a single spelling flashcard
type Card struct {
	Word         string // The word to spell
	Difficulty   string // Difficulty level, used as a tag
	PartOfSpeech string
	Definition   string
	Sentence     string // Example sentence containing the word
	Origin       string // Origin tags joined with " + "
	AudioURL     string // Remote pronunciation mp3, may be empty
}

// CardFromRecord converts an output record to a card
func CardFromRecord(rec lexicon.Record) Card {
	card := Card{
		Word:         rec.Word,
		Difficulty:   rec.Difficulty,
		PartOfSpeech: rec.PartOfSpeech,
		Definition:   rec.Definition,
		Sentence:     rec.Sentence,
		Origin:       rec.Origin,
	}
	if rec.AudioURL != nil {
		card.AudioURL = *rec.AudioURL
	}
	return card
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddRecords adds one card per record
func (g *Generator) AddRecords(records []lexicon.Record) {
	for _, rec := range records {
		g.AddCard(CardFromRecord(rec))
	}
}

// GetCards returns the cards added so far
func (g *Generator) GetCards() []Card {
	return g.cards
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		headers := []string{"Word", "Definition", "PartOfSpeech", "Sentence", "Origin", "Audio"}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Word,
			card.Definition,
			card.PartOfSpeech,
			card.Sentence,
			card.Origin,
			formatAudioField(card.AudioURL),
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// GenerateAPKG creates a proper .apkg file for Anki import
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	apkgGen := NewAPKGGenerator(deckName)

	for _, card := range g.cards {
		apkgGen.AddCard(card)
	}

	return apkgGen.GenerateAPKG(outputPath)
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withAudio, withDefinition int) {
	totalCards = len(g.cards)

	for _, card := range g.cards {
		if card.AudioURL != "" {
			withAudio++
		}
		if card.Definition != "" {
			withDefinition++
		}
	}

	return
}

// formatAudioField renders a remote mp3 as an HTML5 player. Anki's
// [sound:] syntax only plays bundled media.
func formatAudioField(audioURL string) string {
	if audioURL == "" {
		return ""
	}
	return fmt.Sprintf(`<audio controls src="%s"></audio>`, html.EscapeString(audioURL))
}

// MaskWord replaces every case-insensitive occurrence of word in sentence
// with a blank, so the front of a card does not give the spelling away.
func MaskWord(sentence, word string) string {
	word = strings.TrimSpace(word)
	if word == "" || sentence == "" {
		return sentence
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word))
	return re.ReplaceAllString(sentence, "_____")
}
