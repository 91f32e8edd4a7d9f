package storage

import (
	"context"
	"testing"

	"github.com/poiesic/versesim/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCorpus(t *testing.T) {
	verses := []*core.Verse{
		{Id: 2, Text: "ب"},
		{Id: 1, Text: "أ"},
	}
	corpus := NewStaticCorpus(verses...)

	got, err := corpus.FetchAllVerses(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, core.ID(2), got[0].Id)
	assert.Equal(t, core.ID(1), got[1].Id)

	// Callers cannot reorder the corpus through the returned slice.
	got[0], got[1] = got[1], got[0]
	again, err := corpus.FetchAllVerses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.ID(2), again[0].Id)
}

func TestStaticCorpus_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticCorpus().FetchAllVerses(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
