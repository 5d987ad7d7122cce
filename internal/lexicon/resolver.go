package lexicon

import (
	"context"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// SentenceTemplate produces a practice sentence for a word. It must always
// return a usable sentence, falling back to a generic one by itself.
type SentenceTemplate interface {
	Sentence(ctx context.Context, word, partOfSpeech string) string
}

// Config holds the immutable settings of a Resolver.
type Config struct {
	AudioBase      string
	Difficulty     string
	PreferExamples bool
}

// DefaultConfig returns the resolver defaults.
func DefaultConfig() Config {
	return Config{
		AudioBase:  DefaultAudioBase,
		Difficulty: DefaultDifficulty,
	}
}

// Resolver turns one fetch outcome into one Record.
type Resolver struct {
	cfg       Config
	sentences SentenceTemplate
	logger    *zap.Logger
}

// NewResolver creates a resolver. A nil logger discards log output.
func NewResolver(cfg Config, sentences SentenceTemplate, logger *zap.Logger) *Resolver {
	if cfg.AudioBase == "" {
		cfg.AudioBase = DefaultAudioBase
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = DefaultDifficulty
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		cfg:       cfg,
		sentences: sentences,
		logger:    logger.With(zap.String("component", "resolver")),
	}
}

// Resolve builds the record for word from a raw response body. A non-nil
// fetchErr, an empty body or anything other than a JSON array yields the
// default record with a template sentence. Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, word string, body []byte, fetchErr error) Record {
	rec := NewRecord(word, r.cfg.Difficulty)

	if fetchErr != nil {
		r.logger.Debug("fetch failed, using defaults", zap.String("word", word), zap.Error(fetchErr))
		rec.Sentence = r.sentence(ctx, word, "")
		return rec
	}
	if len(body) == 0 || !gjson.ValidBytes(body) {
		r.logger.Debug("unusable response body", zap.String("word", word), zap.Int("bytes", len(body)))
		rec.Sentence = r.sentence(ctx, word, "")
		return rec
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		r.logger.Debug("response is not a list", zap.String("word", word))
		rec.Sentence = r.sentence(ctx, word, "")
		return rec
	}

	part := PartitionEntries(doc, word)

	if entry, ok := part.MeaningEntry(); ok {
		meaning := wrap(entry)
		rec.PartOfSpeech, _ = meaning.field("fl").text()
		if def, ok := meaning.field("shortdef").index(0).text(); ok {
			rec.Definition = def
		}
		rec.Origin = Origin(meaning.field("et").r)
	}

	rec.Sentence = r.pickSentence(ctx, word, rec.PartOfSpeech, part)

	if exact, ok := part.FirstExact(); ok {
		if id, ok := audioID(wrap(exact)); ok {
			if url, ok := BuildAudioURL(r.cfg.AudioBase, id); ok {
				rec.AudioURL = &url
			}
		}
	}

	if !rec.HasDefinition() {
		r.logger.Debug("no meaning entry", zap.String("word", word),
			zap.Int("exact", len(part.Exact)), zap.Int("related", len(part.Related)))
	}
	return rec
}

func (r *Resolver) pickSentence(ctx context.Context, word, pos string, part Partition) string {
	if r.cfg.PreferExamples {
		if s, ok := FirstExample(part.Exact); ok {
			return s
		}
		if s, ok := FirstExample(part.Related); ok {
			return s
		}
	}
	return r.sentence(ctx, word, pos)
}

func (r *Resolver) sentence(ctx context.Context, word, pos string) string {
	if r.sentences == nil {
		return ""
	}
	return r.sentences.Sentence(ctx, word, pos)
}
