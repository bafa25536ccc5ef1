package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"locextract/internal/config"
	"locextract/internal/extract"
	"locextract/internal/memory"
	"locextract/internal/pipeline"
	"locextract/internal/store"
	"locextract/internal/textutil"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "locextract",
		Short: "Extract translatable text from source and asset trees",
		Long:  "Scans a directory tree, extracts human-readable strings into translator worksheets, and parses completed worksheets back into a translation mapping.",
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(applyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <input-dir> <output-dir>",
		Short: "Extract texts from a directory tree into translation worksheets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			extensions, _ := cmd.Flags().GetStringSlice("extensions")
			return runExtract(args[0], args[1], extensions)
		},
	}

	cmd.Flags().StringSlice("extensions", nil, "File extensions to process (comma-separated, e.g. .py,.lua,.txt)")

	return cmd
}

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <translation-file>",
		Short: "Parse a completed master worksheet into a translation mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			saveMemory, _ := cmd.Flags().GetBool("save-memory")
			return runApply(args[0], output, saveMemory)
		},
	}

	cmd.Flags().String("output", "", "Write the parsed mapping to a JSON file")
	cmd.Flags().Bool("save-memory", false, "Persist the mapping into the translation memory (requires DATABASE_URL)")

	return cmd
}

// runExtract handles the `extract` command.
func runExtract(inputDir, outputDir string, extensions []string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	opts := extract.DefaultOptions()
	opts.MinTextLength = cfg.MinTextLength
	opts.MaxChunkSize = cfg.MaxChunkSize
	opts = opts.WithExtensions(cfg.Extensions)
	opts = opts.WithExtensions(extensions)

	runner := pipeline.NewRunner(opts, cfg.WorkerCount)
	result, err := runner.Run(ctx, inputDir)
	if err != nil {
		return fmt.Errorf("extraction run: %w", err)
	}

	if err := store.New().Persist(result.Chunks, outputDir); err != nil {
		return fmt.Errorf("persist extracted texts: %w", err)
	}

	logSummary(result)
	return nil
}

// logSummary reports aggregate statistics for one extraction run.
func logSummary(result *extract.Result) {
	avg := 0.0
	if result.TotalFilesProcessed > 0 {
		avg = float64(result.TotalTextsFound) / float64(result.TotalFilesProcessed)
	}

	large, veryLarge, maxLen := 0, 0, 0
	for _, chunk := range result.Chunks {
		n := len(chunk.Text)
		if n > 1000 {
			large++
		}
		if n > 10000 {
			veryLarge++
		}
		if n > maxLen {
			maxLen = n
		}
	}

	log.Info().
		Int("files", result.TotalFilesProcessed).
		Int("texts", result.TotalTextsFound).
		Float64("seconds", result.ProcessingTime).
		Float64("avg_texts_per_file", avg).
		Int("large_texts", large).
		Int("very_large_texts", veryLarge).
		Int("max_text_length", maxLen).
		Msg("Extraction statistics")
}

// runApply handles the `apply` command.
func runApply(translationFile, outputPath string, saveMemory bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	translations, err := store.New().Reapply(translationFile)
	if err != nil {
		return fmt.Errorf("parse worksheet: %w", err)
	}

	if len(translations) == 0 {
		log.Warn().Str("file", translationFile).Msg("No completed translations found in worksheet")
		return nil
	}

	if outputPath != "" {
		if err := store.New().ExportJSON(translations, outputPath); err != nil {
			return fmt.Errorf("export mapping: %w", err)
		}
	}

	if saveMemory {
		pool, err := connectMemory(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		mem := memory.New(pool)
		if err := mem.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure memory schema: %w", err)
		}
		if err := mem.SetBatch(ctx, translations); err != nil {
			return fmt.Errorf("save translation memory: %w", err)
		}
		log.Info().Int("pairs", len(translations)).Msg("Saved translations to memory")
	}

	for original, translated := range translations {
		log.Debug().
			Str("original", textutil.Truncate(original, 40)).
			Str("translation", textutil.Truncate(translated, 40)).
			Msg("Translation parsed")
	}

	log.Info().Int("translations", len(translations)).Msg("Apply complete")
	return nil
}

// connectMemory opens the PostgreSQL pool backing the translation memory.
func connectMemory(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for --save-memory")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")

	return pool, nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
