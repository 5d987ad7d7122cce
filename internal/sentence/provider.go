package sentence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Provider generates one practice sentence for a word
type Provider interface {
	// Generate returns a sentence using word in the role given by partOfSpeech
	Generate(ctx context.Context, word, partOfSpeech string) (string, error)

	// Name returns the provider name
	Name() string
}

// Provider names accepted by NewProvider
const (
	ProviderTemplate = "template"
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
)

// ErrWordMissing is returned when a model answers with a sentence that does
// not contain the word.
var ErrWordMissing = errors.New("generated sentence does not contain the word")

// Config holds the settings for building a provider
type Config struct {
	Provider  string // "template", "openai" or "gemini"
	Model     string // Model name; empty selects the provider default
	OpenAIKey string
	GeminiKey string
}

// DefaultConfig returns the template provider configuration
func DefaultConfig() Config {
	return Config{Provider: ProviderTemplate}
}

// NewProvider creates the provider named in cfg. Model backed providers are
// wrapped so that any failure falls back to the template.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderTemplate:
		return NewTemplate(), nil

	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required for the %s sentence provider", ProviderOpenAI)
		}
		return WithFallback(NewOpenAIProvider(cfg.OpenAIKey, cfg.Model), NewTemplate(), logger), nil

	case ProviderGemini:
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required for the %s sentence provider", ProviderGemini)
		}
		gemini, err := NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return WithFallback(gemini, NewTemplate(), logger), nil

	default:
		return nil, fmt.Errorf("unknown sentence provider: %s", cfg.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// WithFallback creates a provider that falls back to secondary if primary
// fails or answers with an empty sentence
func WithFallback(primary, fallback Provider, logger *zap.Logger) *ProviderWithFallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With(zap.String("component", "sentence")),
	}
}

// Generate tries the primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Generate(ctx context.Context, word, partOfSpeech string) (string, error) {
	s, err := p.primary.Generate(ctx, word, partOfSpeech)
	if err == nil && strings.TrimSpace(s) != "" {
		return s, nil
	}
	if err == nil {
		err = errors.New("empty sentence")
	}

	p.logger.Warn("sentence provider failed, using fallback",
		zap.String("provider", p.primary.Name()),
		zap.String("fallback", p.fallback.Name()),
		zap.String("word", word),
		zap.Error(err))

	return p.fallback.Generate(ctx, word, partOfSpeech)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// Source adapts a Provider to the never-failing sentence capability the
// resolver needs. Any error ends in the template sentence.
type Source struct {
	provider Provider
	template *Template
}

// NewSource wraps provider. A nil provider yields a template-only source.
func NewSource(provider Provider) *Source {
	t := NewTemplate()
	if provider == nil {
		provider = t
	}
	return &Source{provider: provider, template: t}
}

// Sentence returns a sentence for word; it never returns an empty string.
func (s *Source) Sentence(ctx context.Context, word, partOfSpeech string) string {
	out, err := s.provider.Generate(ctx, word, partOfSpeech)
	if err != nil || strings.TrimSpace(out) == "" {
		return s.template.Render(word, partOfSpeech)
	}
	return out
}

// Name returns the name of the wrapped provider
func (s *Source) Name() string {
	return s.provider.Name()
}
