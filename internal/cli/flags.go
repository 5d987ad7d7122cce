package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	BatchFile  string
	OutputFile string
	Difficulty string
	Archive    bool
	ListModels bool

	// Dictionary flags
	Workers int
	Delay   time.Duration
	Timeout time.Duration

	// Sentence flags
	SentenceProvider string
	SentenceModel    string
	PreferExamples   bool

	// Anki flags
	GenerateAnki bool
	AnkiCSV      bool
	DeckName     string

	// Logging flags
	LogLevel  string
	LogFormat string
}

// Defaults shared by flags and config
const (
	DefaultBatchFile  = "input_words.txt"
	DefaultOutputFile = "words_new.json"
	DefaultWorkers    = 4
	DefaultDelay      = 600 * time.Millisecond
	DefaultDeckName   = "Spelling Bee"
)

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		BatchFile:        DefaultBatchFile,
		OutputFile:       DefaultOutputFile,
		Difficulty:       "two",
		Workers:          DefaultWorkers,
		Delay:            DefaultDelay,
		Timeout:          10 * time.Second,
		SentenceProvider: "template",
		DeckName:         DefaultDeckName,
		LogLevel:         "info",
		LogFormat:        "console",
	}
}
