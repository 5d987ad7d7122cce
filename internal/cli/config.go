package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/spellbee/internal/dictionary"
	"codeberg.org/snonux/spellbee/internal/lexicon"
	"codeberg.org/snonux/spellbee/internal/sentence"
)

// Config is the resolved, immutable run configuration. It is assembled once
// from flags, config file and environment and handed to every component.
type Config struct {
	BatchFile  string
	OutputFile string
	Archive    bool

	Workers int
	Delay   time.Duration

	Dictionary dictionary.Config
	Lexicon    lexicon.Config
	Sentence   sentence.Config

	GenerateAnki bool
	AnkiCSV      bool
	DeckName     string

	LogLevel  string
	LogFormat string
}

// LoadConfig merges flags with viper (config file and SPELLBEE_* env).
// Explicitly set flags win, then environment, then the config file, then
// flag defaults.
func LoadConfig(flags *Flags) (*Config, error) {
	cfg := &Config{
		BatchFile:    stringOr(viper.GetString("input.file"), flags.BatchFile),
		OutputFile:   stringOr(viper.GetString("output.file"), flags.OutputFile),
		Archive:      viper.GetBool("output.archive") || flags.Archive,
		Workers:      intFrom("dictionary.workers", flags.Workers),
		Delay:        durationOr("dictionary.delay", flags.Delay),
		GenerateAnki: viper.GetBool("anki.enabled") || flags.GenerateAnki,
		AnkiCSV:      viper.GetBool("anki.csv") || flags.AnkiCSV,
		DeckName:     stringOr(viper.GetString("anki.deck_name"), flags.DeckName),
		LogLevel:     stringOr(viper.GetString("log.level"), flags.LogLevel),
		LogFormat:    stringOr(viper.GetString("log.format"), flags.LogFormat),
	}

	cfg.Dictionary = dictionary.DefaultConfig()
	cfg.Dictionary.APIKey = GetMWKey()
	cfg.Dictionary.BaseURL = stringOr(viper.GetString("dictionary.base_url"), dictionary.DefaultBaseURL)
	cfg.Dictionary.Timeout = durationOr("dictionary.timeout", flags.Timeout)

	cfg.Lexicon = lexicon.Config{
		AudioBase:      stringOr(viper.GetString("dictionary.audio_base_url"), lexicon.DefaultAudioBase),
		Difficulty:     stringOr(viper.GetString("output.difficulty"), flags.Difficulty),
		PreferExamples: viper.GetBool("sentence.prefer_examples") || flags.PreferExamples,
	}

	cfg.Sentence = sentence.Config{
		Provider:  strings.ToLower(stringOr(viper.GetString("sentence.provider"), flags.SentenceProvider)),
		Model:     stringOr(viper.GetString("sentence.model"), flags.SentenceModel),
		OpenAIKey: GetOpenAIKey(),
		GeminiKey: GetGeminiKey(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Missing API keys are reported by the
// components that need them.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %s", c.Delay)
	}
	if c.Dictionary.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Dictionary.Timeout)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file must not be empty")
	}
	switch c.Sentence.Provider {
	case "", sentence.ProviderTemplate, sentence.ProviderOpenAI, sentence.ProviderGemini:
	default:
		return fmt.Errorf("unknown sentence provider: %s", c.Sentence.Provider)
	}
	return nil
}

func stringOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func intFrom(key string, fallback int) int {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetInt(key)
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetDuration(key)
}
