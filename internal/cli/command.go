package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/spellbee/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spellbee [word]",
		Short: "Spelling Bee Vocabulary Enricher",
		Long: `spellbee enriches a spelling bee word list with Merriam-Webster data.

For every word it looks up the part of speech, a short definition, a
practice sentence, the language of origin and a pronunciation audio link,
and writes the results as one JSON array.

Examples:
  spellbee                          # Process input_words.txt into words_new.json
  spellbee cake                     # Print the record for a single word
  spellbee --batch words.txt -o out.json --workers 2
  spellbee --sentence-provider openai --anki`,
		Args:          cobra.MaximumNArgs(1),
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.spellbee.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", flags.BatchFile, "Word list file (one word per line, # for comments)")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", flags.OutputFile, "Output JSON file")
	cmd.Flags().StringVar(&flags.Difficulty, "difficulty", flags.Difficulty, "Difficulty label stored in every record")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move an existing output file to archive/ before writing")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")

	// Dictionary flags
	cmd.Flags().IntVar(&flags.Workers, "workers", flags.Workers, "Number of concurrent dictionary requests")
	cmd.Flags().DurationVar(&flags.Delay, "delay", flags.Delay, "Minimum interval between dictionary requests across all workers")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout for a single dictionary request")

	// Sentence flags
	cmd.Flags().StringVar(&flags.SentenceProvider, "sentence-provider", flags.SentenceProvider, "Sentence source: template, openai or gemini")
	cmd.Flags().StringVar(&flags.SentenceModel, "sentence-model", "", "Model for the openai or gemini sentence provider")
	cmd.Flags().BoolVar(&flags.PreferExamples, "prefer-examples", false, "Use dictionary example sentences when available")

	// Anki flags
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Generate Anki import file (APKG format by default, use --anki-csv for CSV)")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Generate CSV format instead of APKG when using --anki")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: console or json")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("input.file", cmd.Flags().Lookup("batch"))
	viper.BindPFlag("output.file", cmd.Flags().Lookup("output"))
	viper.BindPFlag("output.difficulty", cmd.Flags().Lookup("difficulty"))
	viper.BindPFlag("output.archive", cmd.Flags().Lookup("archive"))
	viper.BindPFlag("dictionary.workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("dictionary.delay", cmd.Flags().Lookup("delay"))
	viper.BindPFlag("dictionary.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("sentence.provider", cmd.Flags().Lookup("sentence-provider"))
	viper.BindPFlag("sentence.model", cmd.Flags().Lookup("sentence-model"))
	viper.BindPFlag("sentence.prefer_examples", cmd.Flags().Lookup("prefer-examples"))
	viper.BindPFlag("anki.enabled", cmd.Flags().Lookup("anki"))
	viper.BindPFlag("anki.csv", cmd.Flags().Lookup("anki-csv"))
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.Flags().Lookup("log-format"))
}

// InitConfig loads an optional .env file and initializes viper configuration
func InitConfig(cfgFile string) {
	// Keys in .env never override variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".spellbee" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".spellbee")
	}

	// Environment variables, e.g. SPELLBEE_DICTIONARY_WORKERS
	viper.SetEnvPrefix("SPELLBEE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetMWKey retrieves the Merriam-Webster API key from environment or config
func GetMWKey() string {
	if key := os.Getenv("MW_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("dictionary.api_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("sentence.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("sentence.gemini_key")
}
