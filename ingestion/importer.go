package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/versesim/core"
	"github.com/poiesic/versesim/storage"
)

const (
	defaultBatchSize     = 100
	defaultProgressEvery = 50
	defaultMaxAttempts   = 3
	defaultRetryDelay    = 10 * time.Millisecond
)

// ImportResult summarizes an import.
type ImportResult struct {
	Book       string
	Poems      int // Poems stored
	Verses     int // Verses stored
	Duplicates int // Verses left out because the poem already had the same text
	Failed     int // Poems that could not be stored
}

// Importer stores books in a verse repository.
type Importer struct {
	repository  storage.VerseRepository
	batchSize   int
	progress    io.Writer
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// WithBatchSize sets how many verses are written per transaction.
// Default is 100.
func WithBatchSize(size int) Option {
	return func(i *Importer) error {
		if size < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
		}
		i.batchSize = size
		return nil
	}
}

// WithProgress reports import progress to w, typically os.Stderr.
func WithProgress(w io.Writer) Option {
	return func(i *Importer) error {
		i.progress = w
		return nil
	}
}

// WithRetry sets how often a write that conflicts with a concurrent
// transaction is attempted, and the delay before the first retry.
// Default is 3 attempts starting at 10ms.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(i *Importer) error {
		if maxAttempts < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidMaxAttempts, maxAttempts)
		}
		i.maxAttempts = maxAttempts
		i.retryDelay = baseDelay
		return nil
	}
}

// NewImporter creates a new importer.
func NewImporter(repository storage.VerseRepository, opts ...Option) (*Importer, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	i := &Importer{
		repository:  repository,
		batchSize:   defaultBatchSize,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	return i, nil
}

// Import parses a book from r and stores it.
// A poem that fails to store is logged and counted; the import goes on with
// the next poem. Errors are returned for unreadable input, books without
// poems and canceled contexts.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	if r == nil {
		return nil, ErrReaderRequired
	}

	book, err := ParseBook(r)
	if err != nil {
		return nil, err
	}
	if len(book.Poems) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoPoems, book.Title)
	}

	return i.ImportBook(ctx, book)
}

// ImportBook stores an already parsed book.
func (i *Importer) ImportBook(ctx context.Context, book *Book) (*ImportResult, error) {
	if book == nil || len(book.Poems) == 0 {
		return nil, ErrNoPoems
	}

	result := &ImportResult{Book: book.Title}
	tracker := NewProgressTracker(i.progress, book.VerseCount(), defaultProgressEvery)
	if i.progress != nil {
		tracker.Start()
		defer tracker.Finish()
	}

	i.logger.Info("importing book", "title", book.Title, "poems", len(book.Poems), "verses", book.VerseCount())

	for _, poem := range book.Poems {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		stored, duplicates, err := i.importPoem(ctx, book.Title, poem)
		tracker.Add(len(poem.Verses))
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}
			result.Failed++
			i.logger.Warn("failed to import poem", "poem", poem.Title, "err", err)
			continue
		}

		result.Poems++
		result.Verses += stored
		result.Duplicates += duplicates
	}

	i.logger.Info("book imported",
		"title", book.Title,
		"poems", result.Poems,
		"verses", result.Verses,
		"duplicates", result.Duplicates,
		"failed", result.Failed)

	return result, nil
}

// importPoem stores one poem and its verses. Verse numbers follow the
// position in the book, so a skipped duplicate leaves a gap. When a verse
// write fails the poem is removed again, so no partial poem is left behind.
func (i *Importer) importPoem(ctx context.Context, bookTitle string, poem PoemText) (int, int, error) {
	var poems []*core.Poem
	err := i.retry(ctx, func() error {
		var err error
		poems, err = i.repository.AddPoems(ctx, &core.Poem{Title: poem.Title, Book: bookTitle})
		return err
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to add poem: %w", err)
	}
	poemID := poems[0].Id

	seen := make(map[string]struct{}, len(poem.Verses))
	verses := make([]*core.Verse, 0, len(poem.Verses))
	duplicates := 0
	for n, text := range poem.Verses {
		if _, ok := seen[text]; ok {
			duplicates++
			continue
		}
		seen[text] = struct{}{}
		verses = append(verses, &core.Verse{PoemId: poemID, VerseNo: n + 1, Text: text})
	}

	stored := 0
	for start := 0; start < len(verses); start += i.batchSize {
		batch := verses[start:min(start+i.batchSize, len(verses))]
		added, err := i.addBatch(ctx, batch)
		stored += added
		if err != nil {
			i.discardPoem(ctx, poemID, poem.Title)
			return 0, 0, err
		}
		duplicates += len(batch) - added
	}

	i.logger.Debug("poem imported", "poem", poem.Title, "id", poemID, "verses", stored, "duplicates", duplicates)
	return stored, duplicates, nil
}

// discardPoem removes a partially stored poem. The removal runs even when
// ctx is canceled, since cancellation is one way to get here.
func (i *Importer) discardPoem(ctx context.Context, poemID core.ID, title string) {
	err := i.retry(context.WithoutCancel(ctx), func() error {
		return i.repository.DeletePoems(context.WithoutCancel(ctx), poemID)
	})
	if err != nil {
		i.logger.Error("failed to remove partially imported poem", "poem", title, "id", poemID, "err", err)
	}
}

// addBatch writes a batch in one transaction. When the store already holds
// one of the texts the batch is rolled back, so it is retried verse by verse
// and the duplicates are dropped.
func (i *Importer) addBatch(ctx context.Context, batch []*core.Verse) (int, error) {
	err := i.addVerses(ctx, batch...)
	if err == nil {
		return len(batch), nil
	}
	if !errors.Is(err, storage.ErrDuplicateKey) {
		return 0, fmt.Errorf("failed to add verses: %w", err)
	}

	added := 0
	for _, verse := range batch {
		if err := i.addVerses(ctx, verse); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				continue
			}
			return added, fmt.Errorf("failed to add verse %d: %w", verse.VerseNo, err)
		}
		added++
	}
	return added, nil
}

func (i *Importer) addVerses(ctx context.Context, verses ...*core.Verse) error {
	return i.retry(ctx, func() error {
		_, err := i.repository.AddVerses(ctx, verses...)
		return err
	})
}

func (i *Importer) retry(ctx context.Context, op func() error) error {
	return retryConflicts(ctx, i.logger, i.maxAttempts, i.retryDelay, op)
}
