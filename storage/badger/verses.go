package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/versesim/core"
	"github.com/poiesic/versesim/storage"
)

// VerseRepository implements storage.VerseRepository for BadgerDB.
type VerseRepository struct {
	backend  *Backend
	verseSeq *badger.Sequence
	poemSeq  *badger.Sequence
}

var _ storage.VerseRepository = (*VerseRepository)(nil)

// NewVerseRepository creates a new VerseRepository.
func NewVerseRepository(backend *Backend) (*VerseRepository, error) {
	verseSeq, err := backend.GetSequence(verseIDSeq)
	if err != nil {
		return nil, err
	}

	poemSeq, err := backend.GetSequence(poemIDSeq)
	if err != nil {
		verseSeq.Release()
		return nil, err
	}

	return &VerseRepository{
		backend:  backend,
		verseSeq: verseSeq,
		poemSeq:  poemSeq,
	}, nil
}

// Close releases the ID sequences.
func (r *VerseRepository) Close() error {
	return errors.Join(r.verseSeq.Release(), r.poemSeq.Release())
}

// WithTransaction delegates to the backend.
func (r *VerseRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// FetchAllVerses returns every verse ordered by poem, verse number and ID.
func (r *VerseRepository) FetchAllVerses(ctx context.Context) ([]*core.Verse, error) {
	var verses []*core.Verse
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return r.scanOrderIndex(ctx, tx, []byte(verseOrderPrefix), func(v *core.Verse) {
			verses = append(verses, v)
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return verses, nil
}

// GetVersesByPoem retrieves the verses of a poem ordered by verse number.
func (r *VerseRepository) GetVersesByPoem(ctx context.Context, poemID core.ID) ([]*core.Verse, error) {
	var verses []*core.Verse
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return r.scanOrderIndex(ctx, tx, makePartialVerseOrderKey(poemID), func(v *core.Verse) {
			verses = append(verses, v)
		})
	}, false)
	return verses, err
}

// CountVerses returns the number of stored verses.
func (r *VerseRepository) CountVerses(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(versePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return ctx.Err()
	}, false)
	return count, err
}

// AddPoems adds one or more poems to storage.
func (r *VerseRepository) AddPoems(ctx context.Context, poems ...*core.Poem) ([]*core.Poem, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, poem := range poems {
			if err := core.ValidatePoem(poem); err != nil {
				return err
			}
			id, err := nextID(r.poemSeq)
			if err != nil {
				return err
			}
			poem.Id = id
			poem.InsertedAt = time.Now().UTC()

			if err := tx.Set(makePoemKey(poem.Id), storage.MarshalPoem(poem)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return poems, err
}

// GetPoem retrieves a single poem by ID.
func (r *VerseRepository) GetPoem(ctx context.Context, id core.ID) (*core.Poem, error) {
	var poem *core.Poem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makePoemKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			poem, unmarshalErr = storage.UnmarshalPoem(val)
			return unmarshalErr
		})
	}, false)
	return poem, err
}

// DeletePoems removes poems and every verse that belongs to them.
func (r *VerseRepository) DeletePoems(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			poemKey := makePoemKey(id)
			if _, err := tx.Get(poemKey); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return storage.ErrNotFound
				}
				return err
			}

			var verses []*core.Verse
			if err := r.scanOrderIndex(ctx, tx, makePartialVerseOrderKey(id), func(v *core.Verse) {
				verses = append(verses, v)
			}); err != nil {
				return err
			}
			for _, verse := range verses {
				for _, key := range [][]byte{makeVerseOrderKey(verse), makeVerseContentKey(verse), makeVerseKey(verse.Id)} {
					if err := tx.Delete(key); err != nil {
						return err
					}
				}
			}

			if err := tx.Delete(poemKey); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AddVerses adds one or more verses to storage.
func (r *VerseRepository) AddVerses(ctx context.Context, verses ...*core.Verse) ([]*core.Verse, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, verse := range verses {
			if err := core.ValidateVerse(verse); err != nil {
				return err
			}

			// Reject duplicate text within the poem
			contentKey := makeVerseContentKey(verse)
			if _, err := tx.Get(contentKey); err == nil {
				return fmt.Errorf("%w: poem %d verse %q", storage.ErrDuplicateKey, verse.PoemId, verse.Text)
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			id, err := nextID(r.verseSeq)
			if err != nil {
				return err
			}
			verse.Id = id
			verse.InsertedAt = time.Now().UTC()
			verse.UpdatedAt = verse.InsertedAt

			if err := r.writeVerse(tx, verse); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return verses, err
}

// UpdateVerses updates existing verses.
func (r *VerseRepository) UpdateVerses(ctx context.Context, verses ...*core.Verse) ([]*core.Verse, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, verse := range verses {
			if err := core.ValidateVerse(verse); err != nil {
				return err
			}

			old, err := r.readVerse(tx, makeVerseKey(verse.Id))
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update content index if the text moved
			oldContentKey := makeVerseContentKey(old)
			newContentKey := makeVerseContentKey(verse)
			if !bytes.Equal(oldContentKey, newContentKey) {
				if _, err := tx.Get(newContentKey); err == nil {
					return fmt.Errorf("%w: poem %d verse %q", storage.ErrDuplicateKey, verse.PoemId, verse.Text)
				} else if !errors.Is(err, badger.ErrKeyNotFound) {
					return err
				}
				if err := tx.Delete(oldContentKey); err != nil {
					return err
				}
			}

			// Update order index if position changed
			if old.PoemId != verse.PoemId || old.VerseNo != verse.VerseNo {
				if err := tx.Delete(makeVerseOrderKey(old)); err != nil {
					return err
				}
			}

			verse.InsertedAt = old.InsertedAt
			verse.UpdatedAt = time.Now().UTC()
			if err := r.writeVerse(tx, verse); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return verses, err
}

// DeleteVerses removes verses by their IDs.
func (r *VerseRepository) DeleteVerses(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeVerseKey(id)

			verse, err := r.readVerse(tx, key)
			if err != nil {
				return err
			}
			if verse == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeVerseOrderKey(verse)); err != nil {
				return err
			}
			if err := tx.Delete(makeVerseContentKey(verse)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetVerse retrieves a single verse by ID.
func (r *VerseRepository) GetVerse(ctx context.Context, id core.ID) (*core.Verse, error) {
	var result *core.Verse
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readVerse(tx, makeVerseKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetVerses retrieves multiple verses by their IDs.
func (r *VerseRepository) GetVerses(ctx context.Context, ids ...core.ID) ([]*core.Verse, error) {
	var result []*core.Verse
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			verse, err := r.readVerse(tx, makeVerseKey(id))
			if err != nil {
				return err
			}
			if verse != nil {
				result = append(result, verse)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindVerseByText finds the verse of a poem with exactly the given text.
func (r *VerseRepository) FindVerseByText(ctx context.Context, poemID core.ID, text string) (*core.Verse, error) {
	var result *core.Verse
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		lookup := &core.Verse{PoemId: poemID, Text: text}
		item, err := tx.Get(makeVerseContentKey(lookup))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = r.readVerse(tx, makeVerseKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// Helper methods

// nextID returns the next non-zero value of a sequence.
func nextID(seq *badger.Sequence) (core.ID, error) {
	next, err := seq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if next == 0 {
		next, err = seq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(next), nil
}

// writeVerse stores a verse together with its order and content index entries.
func (r *VerseRepository) writeVerse(tx *badger.Txn, verse *core.Verse) error {
	if err := tx.Set(makeVerseKey(verse.Id), storage.MarshalVerse(verse)); err != nil {
		return err
	}
	id := storage.MarshalID(verse.Id)
	if err := tx.Set(makeVerseOrderKey(verse), id); err != nil {
		return err
	}
	return tx.Set(makeVerseContentKey(verse), id)
}

// readVerse reads a verse from the transaction.
// Returns nil, nil if the key doesn't exist.
func (r *VerseRepository) readVerse(tx *badger.Txn, key []byte) (*core.Verse, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var verse *core.Verse
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		verse, unmarshalErr = storage.UnmarshalVerse(val)
		return unmarshalErr
	})
	return verse, err
}

// scanOrderIndex walks the order index under prefix and loads each verse.
func (r *VerseRepository) scanOrderIndex(ctx context.Context, tx *badger.Txn, prefix []byte, fn func(*core.Verse)) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var id core.ID
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		verse, err := r.readVerse(tx, makeVerseKey(id))
		if err != nil {
			return err
		}
		if verse != nil {
			fn(verse)
		}
	}
	return nil
}
