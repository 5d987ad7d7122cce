package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"codeberg.org/snonux/spellbee/internal/anki"
	"codeberg.org/snonux/spellbee/internal/archive"
	"codeberg.org/snonux/spellbee/internal/batch"
	"codeberg.org/snonux/spellbee/internal/cli"
	"codeberg.org/snonux/spellbee/internal/dictionary"
	"codeberg.org/snonux/spellbee/internal/lexicon"
	"codeberg.org/snonux/spellbee/internal/output"
	"codeberg.org/snonux/spellbee/internal/sentence"
)

// DefaultCircuitWait is how long a word is held back before it is tried
// again while the dictionary circuit breaker is open.
const DefaultCircuitWait = time.Second

// DictionaryClient fetches the raw dictionary response for a word
type DictionaryClient interface {
	Fetch(ctx context.Context, word string) ([]byte, error)
}

// Resolver turns a fetch outcome into exactly one output record
type Resolver interface {
	Resolve(ctx context.Context, word string, body []byte, fetchErr error) lexicon.Record
}

// Summary describes a finished batch
type Summary struct {
	Total          int
	WithDefinition int
	WithAudio      int
	Failed         int // transport failures, recovered into default records
	Duration       time.Duration
}

// Processor handles the main word processing logic
type Processor struct {
	cfg      *cli.Config
	client   DictionaryClient
	resolver Resolver
	logger   *zap.Logger
	out      io.Writer

	circuitWait time.Duration
}

// NewProcessor wires the dictionary client, the sentence provider and the
// resolver from cfg. Progress and summaries go to out.
func NewProcessor(ctx context.Context, cfg *cli.Config, logger *zap.Logger, out io.Writer) (*Processor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := dictionary.NewClient(cfg.Dictionary, logger)
	if err != nil {
		return nil, err
	}

	provider, err := sentence.NewProvider(ctx, cfg.Sentence, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("sentence provider ready", zap.String("provider", provider.Name()))

	resolver := lexicon.NewResolver(cfg.Lexicon, sentence.NewSource(provider), logger)
	return New(cfg, client, resolver, logger, out), nil
}

// New creates a processor from already built components
func New(cfg *cli.Config, client DictionaryClient, resolver Resolver, logger *zap.Logger, out io.Writer) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Processor{
		cfg:      cfg,
		client:   client,
		resolver: resolver,
		logger:   logger.With(zap.String("component", "processor")),
		out:      out,

		circuitWait: DefaultCircuitWait,
	}
}

// ProcessBatch processes every word of the configured word list and writes
// the output file. An interrupted run writes nothing.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	words, err := batch.ReadBatchFile(p.cfg.BatchFile)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		p.logger.Warn("word list is empty", zap.String("file", p.cfg.BatchFile))
	}

	p.logger.Info("starting batch",
		zap.Int("words", len(words)),
		zap.Int("workers", p.cfg.Workers),
		zap.Duration("delay", p.cfg.Delay))

	records, summary, err := p.ResolveWords(ctx, words)
	if err != nil {
		return fmt.Errorf("batch interrupted, nothing written: %w", err)
	}

	if p.cfg.Archive {
		archived, err := archive.ArchiveFile(p.cfg.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to archive previous output: %w", err)
		}
		if archived != "" {
			fmt.Fprintf(p.out, "Archived previous output to %s\n", archived)
		}
	}

	if err := output.WriteJSON(p.cfg.OutputFile, records); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Wrote %d records to %s\n", len(records), p.cfg.OutputFile)

	p.printSummary(summary)

	if p.cfg.GenerateAnki || p.cfg.AnkiCSV {
		path, err := p.GenerateAnkiFile(records)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "Anki import file: %s\n", path)
	}

	return nil
}

// ProcessSingleWord resolves one word and prints its record as JSON
func (p *Processor) ProcessSingleWord(ctx context.Context, word string) error {
	word = strings.TrimSpace(word)
	if err := batch.ValidateWord(word); err != nil {
		return fmt.Errorf("invalid word '%s': %w", word, err)
	}

	rec, err := p.resolve(ctx, word)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return output.Encode(p.out, rec)
}

// ResolveWords fetches and resolves words on a bounded worker pool. All
// workers share one rate limiter allowing a request per configured delay.
// Records come back in input order. A cancelled context aborts the batch
// and no records are returned.
func (p *Processor) ResolveWords(ctx context.Context, words []string) ([]lexicon.Record, Summary, error) {
	start := time.Now()
	records := make([]lexicon.Record, len(words))
	failed := make([]bool, len(words))

	limit := rate.Inf
	if p.cfg.Delay > 0 {
		limit = rate.Every(p.cfg.Delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	workers := p.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	done := 0

	for i, word := range words {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			body, fetchErr, err := p.fetch(gctx, limiter, word)
			if err != nil {
				return err
			}
			if fetchErr != nil {
				p.logger.Debug("fetch failed", zap.String("word", word), zap.Error(fetchErr))
			}
			records[i] = p.resolver.Resolve(gctx, word, body, fetchErr)
			failed[i] = fetchErr != nil

			mu.Lock()
			done++
			fmt.Fprintf(p.out, "[ %4d / %d ] %s\n", done, len(words), word)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Summary{}, err
	}

	summary := Summary{Total: len(records), Duration: time.Since(start)}
	for i, rec := range records {
		if rec.HasDefinition() {
			summary.WithDefinition++
		}
		if rec.HasAudio() {
			summary.WithAudio++
		}
		if failed[i] {
			summary.Failed++
		}
	}
	return records, summary, nil
}

// fetch waits for the limiter and fetches word. While the circuit breaker
// is open the word is held back and tried again, so it is never resolved
// from ErrCircuitOpen. fetchErr is the outcome handed to the resolver; err
// is set only when ctx ends the wait.
func (p *Processor) fetch(ctx context.Context, limiter *rate.Limiter, word string) (body []byte, fetchErr, err error) {
	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}

		body, fetchErr = p.client.Fetch(ctx, word)
		if !errors.Is(fetchErr, dictionary.ErrCircuitOpen) {
			return body, fetchErr, nil
		}

		p.logger.Debug("circuit open, holding word",
			zap.String("word", word), zap.Duration("wait", p.circuitWait))
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(p.circuitWait):
		}
	}
}

func (p *Processor) resolve(ctx context.Context, word string) (lexicon.Record, error) {
	body, fetchErr, err := p.fetch(ctx, rate.NewLimiter(rate.Inf, 1), word)
	if err != nil {
		return lexicon.Record{}, err
	}
	if fetchErr != nil {
		p.logger.Warn("fetch failed", zap.String("word", word), zap.Error(fetchErr))
	}
	return p.resolver.Resolve(ctx, word, body, fetchErr), nil
}

func (p *Processor) printSummary(s Summary) {
	fmt.Fprintf(p.out, "\n=== Batch Processing Summary ===\n")
	fmt.Fprintf(p.out, "Total words: %d\n", s.Total)
	fmt.Fprintf(p.out, "With definition: %d\n", s.WithDefinition)
	fmt.Fprintf(p.out, "With audio: %d\n", s.WithAudio)
	if s.Failed > 0 {
		fmt.Fprintf(p.out, "Fetch failures: %d\n", s.Failed)
	}
	fmt.Fprintf(p.out, "Duration: %s\n", s.Duration.Round(time.Millisecond))
	fmt.Fprintf(p.out, "================================\n")
}

// GenerateAnkiFile exports records next to the output file and returns the
// path written. The format is APKG unless CSV was requested.
func (p *Processor) GenerateAnkiFile(records []lexicon.Record) (string, error) {
	base := strings.TrimSuffix(p.cfg.OutputFile, filepath.Ext(p.cfg.OutputFile))

	var outputPath string
	if p.cfg.AnkiCSV {
		outputPath = base + ".csv"
	} else {
		outputPath = base + ".apkg"
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     outputPath,
		IncludeHeaders: true,
	})
	gen.AddRecords(records)

	if p.cfg.AnkiCSV {
		if err := gen.GenerateCSV(); err != nil {
			return "", fmt.Errorf("failed to generate CSV: %w", err)
		}
	} else {
		if err := gen.GenerateAPKG(outputPath, p.cfg.DeckName); err != nil {
			return "", fmt.Errorf("failed to generate APKG: %w", err)
		}
	}

	total, withAudio, withDefinition := gen.Stats()
	fmt.Fprintf(p.out, "  Generated %d cards (%d with audio, %d with definition)\n",
		total, withAudio, withDefinition)

	return outputPath, nil
}
