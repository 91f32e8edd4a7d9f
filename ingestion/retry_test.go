package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/versesim/core"
	"github.com/poiesic/versesim/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConflict = fmt.Errorf("%w: lost race", storage.ErrConflict)

func TestRetryConflicts(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name         string
		failures     int
		err          error
		maxAttempts  int
		wantAttempts int
		wantErr      error
	}{
		{"success on first try", 0, errConflict, 3, 1, nil},
		{"eventual success", 2, errConflict, 5, 3, nil},
		{"all attempts conflict", 10, errConflict, 3, 3, storage.ErrConflict},
		{"other errors are not retried", 10, storage.ErrStorageClosed, 5, 1, storage.ErrStorageClosed},
		{"single attempt", 10, errConflict, 1, 1, storage.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := retryConflicts(context.Background(), logger, tt.maxAttempts, time.Millisecond, func() error {
				attempts++
				if attempts <= tt.failures {
					return tt.err
				}
				return nil
			})
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantAttempts, attempts)
		})
	}
}

func TestRetryConflicts_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := retryConflicts(ctx, slog.Default(), 10, time.Hour, func() error {
		attempts++
		cancel()
		return errConflict
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

// conflictingRepository fails the first few verse writes with a conflict.
type conflictingRepository struct {
	storage.VerseRepository
	conflicts int
}

func (r *conflictingRepository) AddVerses(ctx context.Context, verses ...*core.Verse) ([]*core.Verse, error) {
	if r.conflicts > 0 {
		r.conflicts--
		return nil, errConflict
	}
	return r.VerseRepository.AddVerses(ctx, verses...)
}

func TestImport_RetriesConflicts(t *testing.T) {
	repo := &conflictingRepository{VerseRepository: newTestRepository(t), conflicts: 2}

	importer, err := NewImporter(repo, WithRetry(3, time.Millisecond))
	require.NoError(t, err)

	result, err := importer.Import(context.Background(), strings.NewReader("[P]\n(a)\n(b)"))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Verses)
	assert.Zero(t, result.Failed)
}

func TestImport_ConflictsExhausted(t *testing.T) {
	repo := &conflictingRepository{VerseRepository: newTestRepository(t), conflicts: 5}

	importer, err := NewImporter(repo, WithRetry(2, time.Millisecond))
	require.NoError(t, err)

	result, err := importer.Import(context.Background(), strings.NewReader("[P]\n(a)\n(b)"))
	require.NoError(t, err)
	assert.Zero(t, result.Verses)
	assert.Equal(t, 1, result.Failed)

	_, err = NewImporter(repo, WithRetry(0, time.Millisecond))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}
