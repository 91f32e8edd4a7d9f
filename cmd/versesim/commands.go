package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/versesim"
	"github.com/poiesic/versesim/config"
	"github.com/poiesic/versesim/ingestion"
	"github.com/poiesic/versesim/ngram"
	"github.com/poiesic/versesim/search"
	"github.com/urfave/cli/v2"
)

// loadConfig reads the --config file, if any, and applies the flags that
// were set explicitly.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
	}
	if c.IsSet("n") {
		cfg.Search.N = c.Int("n")
	}
	if c.IsSet("min-similarity") {
		cfg.Search.MinSimilarity = c.Float64("min-similarity")
	}
	if c.IsSet("script") {
		cfg.Search.Script = c.String("script")
	}
	if c.IsSet("normalization") {
		cfg.Search.Normalization = c.String("normalization")
	}
	if c.IsSet("strip-diacritics") {
		cfg.Search.StripDiacritics = c.Bool("strip-diacritics")
	}
	if c.IsSet("workers") {
		cfg.Search.Workers = c.Int("workers")
	}
	if c.IsSet("limit") {
		cfg.Search.Limit = c.Int("limit")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openDatabase(cfg *config.Config) (*versesim.Database, error) {
	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	db, err := versesim.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	file := c.String("file")
	if c.Args().Present() {
		file = c.Args().First()
	}

	var input io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("failed to open book: %w", err)
		}
		defer f.Close()
		input = f
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []ingestion.Option{ingestion.WithBatchSize(c.Int("batch-size"))}
	if c.Bool("progress") {
		opts = append(opts, ingestion.WithProgress(c.App.ErrWriter))
	}
	importer, err := db.NewImporter(opts...)
	if err != nil {
		return err
	}

	result, err := importer.Import(ctx, input)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %d poems (%d verses) from %q\n", result.Poems, result.Verses, result.Book)
	if result.Duplicates > 0 {
		fmt.Fprintf(c.App.Writer, "Skipped %d duplicate verses\n", result.Duplicates)
	}
	if result.Failed > 0 {
		fmt.Fprintf(c.App.Writer, "Failed to store %d poems\n", result.Failed)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	text := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("search text is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	normalizer, err := cfg.Search.Normalizer()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher(
		search.WithNormalizer(normalizer),
		search.WithWorkers(cfg.Search.Workers),
		search.WithLimit(cfg.Search.Limit),
	)
	if err != nil {
		return err
	}
	defer searcher.Release()

	report, err := searcher.Search(ctx, search.Query{
		Text:          text,
		N:             cfg.Search.N,
		MinSimilarity: cfg.Search.MinSimilarity,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Found %d verses (scanned %d of %d)\n", len(report.Results), report.Scanned, report.Fetched)
	for i, r := range report.Results {
		fmt.Fprintf(out, "%d: [%.2f%%] poem %d verse %d: %s (grams %d/%d, words %d)\n",
			i+1, r.Similarity, r.Verse.PoemId, r.Verse.VerseNo, r.Verse.Text,
			r.IntersectionCount, r.TargetGramCount, r.CommonWordCount)
	}
	return nil
}

func similarityCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected two texts, got %d", c.NArg())
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	normalizer, err := cfg.Search.Normalizer()
	if err != nil {
		return err
	}

	target := normalizer.Grams(c.Args().Get(0), cfg.Search.N)
	candidate := normalizer.Grams(c.Args().Get(1), cfg.Search.N)
	common := ngram.CountCommonWords(normalizer.SplitWords(c.Args().Get(0)), normalizer.SplitWords(c.Args().Get(1)))

	fmt.Fprintf(c.App.Writer, "%.2f%% (%d of %d grams, %d common words)\n",
		ngram.Similarity(target, candidate), ngram.IntersectionCount(target, candidate), len(target), common)
	return nil
}

func ngramsCommand(c *cli.Context) error {
	if !c.Args().Present() {
		return fmt.Errorf("text is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	normalizer, err := cfg.Search.Normalizer()
	if err != nil {
		return err
	}

	for _, gram := range normalizer.Grams(strings.Join(c.Args().Slice(), " "), cfg.Search.N) {
		fmt.Fprintln(c.App.Writer, gram)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := db.VerseRepository().CountVerses(ctx)
	if err != nil {
		return fmt.Errorf("failed to count verses: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Database: %s\nVerses: %d\n", cfg.Database.Path, count)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
