package storage

import (
	"context"
	"slices"

	"github.com/poiesic/versesim/core"
)

// StaticCorpus is a CorpusProvider over a fixed slice of verses.
// The slice is served in the order given.
type StaticCorpus struct {
	verses []*core.Verse
}

var _ CorpusProvider = (*StaticCorpus)(nil)

// NewStaticCorpus creates a corpus from verses. The slice is copied; the
// verses themselves are shared.
func NewStaticCorpus(verses ...*core.Verse) *StaticCorpus {
	return &StaticCorpus{verses: slices.Clone(verses)}
}

// FetchAllVerses returns a copy of the corpus slice.
func (c *StaticCorpus) FetchAllVerses(ctx context.Context) ([]*core.Verse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(c.verses), nil
}
