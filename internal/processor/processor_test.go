package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"codeberg.org/snonux/spellbee/internal/cli"
	"codeberg.org/snonux/spellbee/internal/dictionary"
	"codeberg.org/snonux/spellbee/internal/lexicon"
	"codeberg.org/snonux/spellbee/internal/sentence"
	"codeberg.org/snonux/spellbee/internal/testutil"
)

func testConfig(t *testing.T) *cli.Config {
	t.Helper()
	dir := t.TempDir()
	return &cli.Config{
		BatchFile:  filepath.Join(dir, "input_words.txt"),
		OutputFile: filepath.Join(dir, "words_new.json"),
		Workers:    4,
		Dictionary: dictionary.DefaultConfig(),
		Lexicon:    lexicon.DefaultConfig(),
		Sentence:   sentence.DefaultConfig(),
		DeckName:   "Spelling Bee",
	}
}

func newTestProcessor(cfg *cli.Config, client DictionaryClient, out *bytes.Buffer) *Processor {
	resolver := lexicon.NewResolver(cfg.Lexicon, sentence.NewTemplate(), nil)
	return New(cfg, client, resolver, nil, out)
}

func standardResponses() map[string]string {
	return map[string]string{
		"cake":  testutil.CakeResponse,
		"run":   testutil.RunResponse,
		"bixby": testutil.BixResponse,
		"runny": testutil.RelatedOnlyResponse,
	}
}

func TestNewProcessor(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dictionary.APIKey = "test-key"

	p, err := NewProcessor(context.Background(), cfg, nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("NewProcessor failed: %v", err)
	}
	if p.client == nil {
		t.Error("Dictionary client not initialized")
	}
	if p.resolver == nil {
		t.Error("Resolver not initialized")
	}
}

func TestNewProcessor_MissingAPIKey(t *testing.T) {
	cfg := testConfig(t)

	_, err := NewProcessor(context.Background(), cfg, nil, &bytes.Buffer{})
	if !errors.Is(err, dictionary.ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got %v", err)
	}
}

func TestNewProcessor_ProviderWithoutKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dictionary.APIKey = "test-key"
	cfg.Sentence.Provider = sentence.ProviderOpenAI

	if _, err := NewProcessor(context.Background(), cfg, nil, &bytes.Buffer{}); err == nil {
		t.Error("Expected error for openai provider without key")
	}
}

func TestResolveWords_PreservesInputOrder(t *testing.T) {
	cfg := testConfig(t)
	client := testutil.NewMockDictionaryClient(standardResponses())
	client.Delays["cake"] = 40 * time.Millisecond
	client.Delays["run"] = 20 * time.Millisecond

	var out bytes.Buffer
	p := newTestProcessor(cfg, client, &out)

	words := []string{"cake", "run", "bixby", "runny"}
	records, summary, err := p.ResolveWords(context.Background(), words)
	if err != nil {
		t.Fatalf("ResolveWords failed: %v", err)
	}

	if len(records) != len(words) {
		t.Fatalf("Expected %d records, got %d", len(words), len(records))
	}
	for i, word := range words {
		if records[i].Word != word {
			t.Errorf("records[%d].Word = %q, want %q", i, records[i].Word, word)
		}
	}

	if summary.Total != 4 {
		t.Errorf("Total = %d, want 4", summary.Total)
	}
	if summary.WithDefinition != 4 {
		t.Errorf("WithDefinition = %d, want 4", summary.WithDefinition)
	}
	// runny only matches a related entry, which never contributes audio
	if summary.WithAudio != 3 {
		t.Errorf("WithAudio = %d, want 3", summary.WithAudio)
	}
	if summary.Failed != 0 {
		t.Errorf("Failed = %d, want 0", summary.Failed)
	}

	if got := strings.Count(out.String(), " / 4 ] "); got != 4 {
		t.Errorf("Expected 4 progress lines, got %d:\n%s", got, out.String())
	}
}

func TestResolveWords_RecordContents(t *testing.T) {
	cfg := testConfig(t)
	client := testutil.NewMockDictionaryClient(standardResponses())
	p := newTestProcessor(cfg, client, &bytes.Buffer{})

	records, _, err := p.ResolveWords(context.Background(), []string{"cake", "bixby", "runny"})
	if err != nil {
		t.Fatalf("ResolveWords failed: %v", err)
	}

	cake := records[0]
	if cake.PartOfSpeech != "noun" {
		t.Errorf("cake part of speech = %q, want noun", cake.PartOfSpeech)
	}
	if cake.Definition != "a breadlike food made from a dough or batter" {
		t.Errorf("cake definition = %q", cake.Definition)
	}
	if cake.Origin != "Scandinavian Languages" {
		t.Errorf("cake origin = %q", cake.Origin)
	}
	if cake.AudioURL == nil || !strings.HasSuffix(*cake.AudioURL, "/c/cake0001.mp3") {
		t.Errorf("cake audio = %v", cake.AudioURL)
	}
	if !strings.Contains(cake.Sentence, "cake") {
		t.Errorf("cake sentence %q does not contain the word", cake.Sentence)
	}

	bix := records[1]
	if bix.AudioURL == nil || !strings.HasSuffix(*bix.AudioURL, "/bix/bix00001.mp3") {
		t.Errorf("bixby audio = %v", bix.AudioURL)
	}

	runny := records[2]
	if runny.AudioURL != nil {
		t.Errorf("runny should have no audio, got %s", *runny.AudioURL)
	}
	if runny.Definition != "to go faster than a walk" {
		t.Errorf("runny definition = %q", runny.Definition)
	}
}

func TestResolveWords_TransportFailure(t *testing.T) {
	cfg := testConfig(t)
	client := testutil.NewMockDictionaryClient(standardResponses())
	client.Errors["xyzzy123"] = &dictionary.TransportError{Word: "xyzzy123", Err: context.DeadlineExceeded}

	p := newTestProcessor(cfg, client, &bytes.Buffer{})

	records, summary, err := p.ResolveWords(context.Background(), []string{"cake", "xyzzy123"})
	if err != nil {
		t.Fatalf("A transport failure must not abort the batch: %v", err)
	}

	failed := records[1]
	if failed.Word != "xyzzy123" || failed.Difficulty != lexicon.DefaultDifficulty {
		t.Errorf("Unexpected default record: %+v", failed)
	}
	if failed.PartOfSpeech != "" || failed.Definition != "" || failed.Origin != "" || failed.AudioURL != nil {
		t.Errorf("Default record should have empty fields: %+v", failed)
	}
	if failed.Sentence != sentence.NewTemplate().Render("xyzzy123", "") {
		t.Errorf("Default record sentence = %q", failed.Sentence)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
}

func TestResolveWords_BoundedConcurrency(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workers = 2

	responses := make(map[string]string)
	words := make([]string, 0, 8)
	for _, w := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		responses[w] = testutil.SuggestionsResponse
		words = append(words, w)
	}
	client := testutil.NewMockDictionaryClient(responses)
	client.Delay = 10 * time.Millisecond

	p := newTestProcessor(cfg, client, &bytes.Buffer{})
	if _, _, err := p.ResolveWords(context.Background(), words); err != nil {
		t.Fatalf("ResolveWords failed: %v", err)
	}

	if got := client.MaxInFlight(); got > 2 {
		t.Errorf("MaxInFlight = %d, want at most 2", got)
	}
	if got := len(client.Calls()); got != len(words) {
		t.Errorf("Expected %d fetches, got %d", len(words), got)
	}
}

func TestResolveWords_RateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Delay = 25 * time.Millisecond

	client := testutil.NewMockDictionaryClient(standardResponses())
	p := newTestProcessor(cfg, client, &bytes.Buffer{})

	start := time.Now()
	if _, _, err := p.ResolveWords(context.Background(), []string{"cake", "run", "bixby", "runny"}); err != nil {
		t.Fatalf("ResolveWords failed: %v", err)
	}

	// The first request is immediate, the other three wait one delay each.
	if elapsed := time.Since(start); elapsed < 70*time.Millisecond {
		t.Errorf("Four requests finished in %s, expected the shared limiter to space them", elapsed)
	}
}

func TestResolveWords_Cancelled(t *testing.T) {
	cfg := testConfig(t)
	client := testutil.NewMockDictionaryClient(standardResponses())
	p := newTestProcessor(cfg, client, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, _, err := p.ResolveWords(ctx, []string{"cake", "run"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if records != nil {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

// outageServer answers 500 for the first failures requests and a valid
// entry for the requested word afterwards.
func outageServer(t *testing.T, failures int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= failures {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		word := strings.TrimPrefix(r.URL.Path, "/")
		fmt.Fprintf(w, `[{"meta":{"id":%q},"fl":"noun","shortdef":["a test word"]}]`, word)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestResolveWords_RecoversAfterOutage(t *testing.T) {
	tests := []struct {
		name    string
		workers int
	}{
		{name: "single worker", workers: 1},
		{name: "concurrent workers", workers: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Five words fail twice each (request plus retry), which opens
			// the breaker; the server is healthy from then on.
			srv, hits := outageServer(t, 10)

			cfg := testConfig(t)
			cfg.Workers = tt.workers
			cfg.Dictionary.APIKey = "test-key"
			cfg.Dictionary.BaseURL = srv.URL
			cfg.Dictionary.RetryBackoff = time.Millisecond
			cfg.Dictionary.BreakerCooldown = 50 * time.Millisecond

			client, err := dictionary.NewClient(cfg.Dictionary, nil)
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}
			p := newTestProcessor(cfg, client, &bytes.Buffer{})
			p.circuitWait = 10 * time.Millisecond

			words := make([]string, 20)
			for i := range words {
				words[i] = fmt.Sprintf("w%02d", i+1)
			}

			records, summary, err := p.ResolveWords(context.Background(), words)
			if err != nil {
				t.Fatalf("ResolveWords failed: %v", err)
			}

			if summary.Failed > 5 {
				t.Errorf("Failed = %d, want at most 5", summary.Failed)
			}
			if summary.WithDefinition+summary.Failed != len(words) {
				t.Errorf("WithDefinition = %d, Failed = %d, want every word defined or failed",
					summary.WithDefinition, summary.Failed)
			}
			if tt.workers == 1 {
				for i, rec := range records[5:] {
					if rec.Definition != "a test word" {
						t.Errorf("%s after the outage has no definition", words[i+5])
					}
				}
			}
			if got := hits.Load(); got < 25 {
				t.Errorf("Server saw %d requests, want every word after the outage sent", got)
			}
		})
	}
}

func TestResolveWords_CancelWhileCircuitOpen(t *testing.T) {
	cfg := testConfig(t)
	client := testutil.NewMockDictionaryClient(nil)
	client.Errors["cake"] = &dictionary.TransportError{Word: "cake", Err: dictionary.ErrCircuitOpen}

	p := newTestProcessor(cfg, client, &bytes.Buffer{})
	p.circuitWait = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	_, _, err := p.ResolveWords(ctx, []string{"cake"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
	if got := len(client.Calls()); got < 2 {
		t.Errorf("Expected the word to be tried again while the circuit is open, got %d calls", got)
	}
}

func TestProcessBatch(t *testing.T) {
	cfg := testConfig(t)
	testutil.CreateTestFile(t, cfg.BatchFile, []byte("# words for round one\ncake\n\n  run  \nxyzzy123\n"))

	client := testutil.NewMockDictionaryClient(standardResponses())
	client.Errors["xyzzy123"] = &dictionary.TransportError{Word: "xyzzy123", Err: dictionary.ErrEmptyBody}

	var out bytes.Buffer
	p := newTestProcessor(cfg, client, &out)

	if err := p.ProcessBatch(context.Background()); err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}

	var records []lexicon.Record
	testutil.ReadJSONFile(t, cfg.OutputFile, &records)

	want := []string{"cake", "run", "xyzzy123"}
	if len(records) != len(want) {
		t.Fatalf("Expected %d records, got %d", len(want), len(records))
	}
	for i, word := range want {
		if records[i].Word != word {
			t.Errorf("records[%d].Word = %q, want %q", i, records[i].Word, word)
		}
	}

	testutil.AssertFileContains(t, cfg.OutputFile, `"audio_url": null`)
	if !strings.Contains(out.String(), "=== Batch Processing Summary ===") {
		t.Errorf("Summary missing from output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Fetch failures: 1") {
		t.Errorf("Failure count missing from output:\n%s", out.String())
	}
}

func TestProcessBatch_EmptyList(t *testing.T) {
	cfg := testConfig(t)
	testutil.CreateTestFile(t, cfg.BatchFile, []byte("# nothing yet\n\n"))

	p := newTestProcessor(cfg, testutil.NewMockDictionaryClient(nil), &bytes.Buffer{})
	if err := p.ProcessBatch(context.Background()); err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}

	data, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Expected empty JSON array, got %s", data)
	}
}

func TestProcessBatch_MissingWordList(t *testing.T) {
	cfg := testConfig(t)
	p := newTestProcessor(cfg, testutil.NewMockDictionaryClient(nil), &bytes.Buffer{})

	if err := p.ProcessBatch(context.Background()); err == nil {
		t.Error("Expected error for missing word list")
	}
	testutil.AssertFileNotExists(t, cfg.OutputFile)
}

func TestProcessBatch_CancelledWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	testutil.CreateTestFile(t, cfg.BatchFile, []byte("cake\nrun\n"))
	testutil.CreateTestFile(t, cfg.OutputFile, []byte(`["previous"]`))

	p := newTestProcessor(cfg, testutil.NewMockDictionaryClient(standardResponses()), &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.ProcessBatch(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	testutil.AssertFileContains(t, cfg.OutputFile, `["previous"]`)
}

func TestProcessBatch_Archive(t *testing.T) {
	cfg := testConfig(t)
	cfg.Archive = true
	testutil.CreateTestFile(t, cfg.BatchFile, []byte("cake\n"))
	testutil.CreateTestFile(t, cfg.OutputFile, []byte(`["previous"]`))

	p := newTestProcessor(cfg, testutil.NewMockDictionaryClient(standardResponses()), &bytes.Buffer{})
	if err := p.ProcessBatch(context.Background()); err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(cfg.OutputFile), "archive", "words_new-*.json"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected one archived file, got %v", matches)
	}
	testutil.AssertFileContains(t, matches[0], `["previous"]`)
	testutil.AssertFileContains(t, cfg.OutputFile, `"word": "cake"`)
}

func TestProcessBatch_AnkiCSV(t *testing.T) {
	cfg := testConfig(t)
	cfg.AnkiCSV = true
	testutil.CreateTestFile(t, cfg.BatchFile, []byte("cake\nrun\n"))

	var out bytes.Buffer
	p := newTestProcessor(cfg, testutil.NewMockDictionaryClient(standardResponses()), &out)
	if err := p.ProcessBatch(context.Background()); err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}

	csvPath := strings.TrimSuffix(cfg.OutputFile, ".json") + ".csv"
	testutil.AssertFileExists(t, csvPath)
	testutil.AssertFileContains(t, csvPath, "cake")
	if !strings.Contains(out.String(), "Generated 2 cards") {
		t.Errorf("Card stats missing from output:\n%s", out.String())
	}
}

func TestGenerateAnkiFile_APKG(t *testing.T) {
	cfg := testConfig(t)
	cfg.GenerateAnki = true

	p := newTestProcessor(cfg, testutil.NewMockDictionaryClient(nil), &bytes.Buffer{})

	rec := lexicon.NewRecord("cake", lexicon.DefaultDifficulty)
	rec.Definition = "a breadlike food"
	path, err := p.GenerateAnkiFile([]lexicon.Record{rec})
	if err != nil {
		t.Fatalf("GenerateAnkiFile failed: %v", err)
	}

	if filepath.Ext(path) != ".apkg" {
		t.Errorf("Expected .apkg path, got %s", path)
	}
	testutil.AssertFileExists(t, path)
}

func TestProcessSingleWord(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer
	p := newTestProcessor(cfg, testutil.NewMockDictionaryClient(standardResponses()), &out)

	if err := p.ProcessSingleWord(context.Background(), "  run "); err != nil {
		t.Fatalf("ProcessSingleWord failed: %v", err)
	}

	var rec lexicon.Record
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("Output is not a JSON record: %v\n%s", err, out.String())
	}
	if rec.Word != "run" || rec.PartOfSpeech != "verb" {
		t.Errorf("Unexpected record: %+v", rec)
	}
	if !strings.Contains(rec.Origin, "Scandinavian Languages") || !strings.Contains(rec.Origin, "Old English") {
		t.Errorf("run origin = %q", rec.Origin)
	}
}

func TestProcessSingleWord_Empty(t *testing.T) {
	cfg := testConfig(t)
	p := newTestProcessor(cfg, testutil.NewMockDictionaryClient(nil), &bytes.Buffer{})

	if err := p.ProcessSingleWord(context.Background(), "   "); err == nil {
		t.Error("Expected error for empty word")
	}
}
