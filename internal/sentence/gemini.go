package sentence

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider asks a Gemini model for sentences
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiProvider creates a new Gemini sentence provider
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	return newGeminiProvider(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model)
}

func newGeminiProvider(ctx context.Context, cfg *genai.ClientConfig, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{
		client:  client,
		model:   model,
		timeout: 30 * time.Second,
	}, nil
}

// Generate implements Provider
func (p *GeminiProvider) Generate(ctx context.Context, word, partOfSpeech string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	temperature := float32(0.7)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
		Temperature:     &temperature,
		MaxOutputTokens: 60,
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(userPrompt(word, partOfSpeech)), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return cleanSentence(resp.Text(), word)
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}
