package storage

import (
	"context"

	"github.com/poiesic/versesim/core"
)

// CorpusProvider supplies the verses scanned by similarity search.
// Implementations must return a fully materialized slice; its order is the
// tie-break order of search results.
type CorpusProvider interface {
	// FetchAllVerses returns every verse in the corpus.
	FetchAllVerses(ctx context.Context) ([]*core.Verse, error)
}

// VerseRepository provides operations for managing poems and verses.
// Implementations must be thread-safe and support concurrent access.
type VerseRepository interface {
	CorpusProvider

	// AddPoems adds one or more poems to storage.
	// Generates new IDs from sequence and sets InsertedAt.
	AddPoems(ctx context.Context, poems ...*core.Poem) ([]*core.Poem, error)

	// GetPoem retrieves a single poem by ID.
	// Returns ErrNotFound if the poem doesn't exist.
	GetPoem(ctx context.Context, id core.ID) (*core.Poem, error)

	// DeletePoems removes poems by their IDs together with all of their verses.
	// Returns ErrNotFound if any poem doesn't exist.
	DeletePoems(ctx context.Context, ids ...core.ID) error

	// AddVerses adds one or more verses to storage.
	// Generates new IDs from sequence and sets InsertedAt/UpdatedAt.
	// Returns ErrDuplicateKey if a verse with the same text already exists in its poem.
	AddVerses(ctx context.Context, verses ...*core.Verse) ([]*core.Verse, error)

	// UpdateVerses updates existing verses.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any verse doesn't exist.
	UpdateVerses(ctx context.Context, verses ...*core.Verse) ([]*core.Verse, error)

	// DeleteVerses removes verses by their IDs, along with their indices.
	// Returns ErrNotFound if any verse doesn't exist.
	DeleteVerses(ctx context.Context, ids ...core.ID) error

	// GetVerse retrieves a single verse by ID.
	// Returns ErrNotFound if the verse doesn't exist.
	GetVerse(ctx context.Context, id core.ID) (*core.Verse, error)

	// GetVerses retrieves multiple verses by their IDs.
	// Returns only the verses that exist (no error for missing verses).
	GetVerses(ctx context.Context, ids ...core.ID) ([]*core.Verse, error)

	// GetVersesByPoem retrieves the verses of a poem ordered by verse number.
	GetVersesByPoem(ctx context.Context, poemID core.ID) ([]*core.Verse, error)

	// FindVerseByText finds the verse of a poem with exactly the given text.
	// Returns ErrNotFound if no verse matches.
	FindVerseByText(ctx context.Context, poemID core.ID, text string) (*core.Verse, error)

	// CountVerses returns the number of stored verses.
	CountVerses(ctx context.Context) (int, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases the repository's resources.
	Close() error
}
