package badger

import (
	"context"
	"testing"

	"github.com/poiesic/versesim/core"
	"github.com/poiesic/versesim/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) storage.VerseRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func addPoem(t *testing.T, repo storage.VerseRepository, title string) *core.Poem {
	t.Helper()
	poems, err := repo.AddPoems(context.Background(), &core.Poem{Title: title, Book: "المعلقات"})
	require.NoError(t, err)
	return poems[0]
}

func TestAddPoems(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	poem := addPoem(t, repo, "معلقة امرئ القيس")
	assert.NotZero(t, poem.Id)
	assert.False(t, poem.InsertedAt.IsZero())

	got, err := repo.GetPoem(ctx, poem.Id)
	require.NoError(t, err)
	assert.Equal(t, "معلقة امرئ القيس", got.Title)
	assert.Equal(t, "المعلقات", got.Book)

	_, err = repo.GetPoem(ctx, core.ID(9999))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repo.AddPoems(ctx, &core.Poem{Title: ""})
	assert.ErrorIs(t, err, core.ErrEmptyPoemTitle)
}

func TestAddVerses(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	poem := addPoem(t, repo, "المعلقة")

	added, err := repo.AddVerses(ctx,
		&core.Verse{PoemId: poem.Id, VerseNo: 1, Text: "قفا نبك من ذكرى حبيب ومنزل"},
		&core.Verse{PoemId: poem.Id, VerseNo: 2, Text: "بسقط اللوى بين الدخول فحومل"},
	)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.NotZero(t, added[0].Id)
	assert.NotEqual(t, added[0].Id, added[1].Id)
	assert.False(t, added[0].InsertedAt.IsZero())

	got, err := repo.GetVerse(ctx, added[1].Id)
	require.NoError(t, err)
	assert.Equal(t, "بسقط اللوى بين الدخول فحومل", got.Text)

	count, err := repo.CountVerses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAddVerses_Validation(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.AddVerses(context.Background(), &core.Verse{VerseNo: 1, Text: "قفا"})
	assert.ErrorIs(t, err, core.ErrMissingPoem)
}

func TestAddVerses_Duplicate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	first := addPoem(t, repo, "الأولى")
	second := addPoem(t, repo, "الثانية")

	_, err := repo.AddVerses(ctx, &core.Verse{PoemId: first.Id, VerseNo: 1, Text: "قفا نبك"})
	require.NoError(t, err)

	_, err = repo.AddVerses(ctx, &core.Verse{PoemId: first.Id, VerseNo: 2, Text: "قفا نبك"})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Same text in another poem is allowed
	_, err = repo.AddVerses(ctx, &core.Verse{PoemId: second.Id, VerseNo: 1, Text: "قفا نبك"})
	assert.NoError(t, err)

	// Duplicates within one batch roll back the whole batch
	_, err = repo.AddVerses(ctx,
		&core.Verse{PoemId: second.Id, VerseNo: 2, Text: "وقوفا بها"},
		&core.Verse{PoemId: second.Id, VerseNo: 3, Text: "وقوفا بها"},
	)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	count, err := repo.CountVerses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFetchAllVerses_Order(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	first := addPoem(t, repo, "الأولى")
	second := addPoem(t, repo, "الثانية")

	// Insert out of order: corpus order must follow poem then verse number.
	_, err := repo.AddVerses(ctx,
		&core.Verse{PoemId: second.Id, VerseNo: 1, Text: "ج"},
		&core.Verse{PoemId: first.Id, VerseNo: 2, Text: "ب"},
		&core.Verse{PoemId: first.Id, VerseNo: 1, Text: "أ"},
	)
	require.NoError(t, err)

	verses, err := repo.FetchAllVerses(ctx)
	require.NoError(t, err)
	require.Len(t, verses, 3)
	assert.Equal(t, "أ", verses[0].Text)
	assert.Equal(t, "ب", verses[1].Text)
	assert.Equal(t, "ج", verses[2].Text)

	byPoem, err := repo.GetVersesByPoem(ctx, first.Id)
	require.NoError(t, err)
	require.Len(t, byPoem, 2)
	assert.Equal(t, 1, byPoem[0].VerseNo)
	assert.Equal(t, 2, byPoem[1].VerseNo)
}

func TestFetchAllVerses_Empty(t *testing.T) {
	repo := newTestRepository(t)

	verses, err := repo.FetchAllVerses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, verses)
}

func TestFetchAllVerses_Closed(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	repo.Close()
	require.NoError(t, backend.Close())

	_, err = repo.FetchAllVerses(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestUpdateVerses(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	poem := addPoem(t, repo, "المعلقة")

	added, err := repo.AddVerses(ctx,
		&core.Verse{PoemId: poem.Id, VerseNo: 1, Text: "قفا نبك"},
		&core.Verse{PoemId: poem.Id, VerseNo: 2, Text: "بسقط اللوى"},
	)
	require.NoError(t, err)

	t.Run("text and position change", func(t *testing.T) {
		updated := *added[0]
		updated.Text = "قفا نبك من ذكرى"
		updated.VerseNo = 3
		_, err := repo.UpdateVerses(ctx, &updated)
		require.NoError(t, err)

		got, err := repo.FindVerseByText(ctx, poem.Id, "قفا نبك من ذكرى")
		require.NoError(t, err)
		assert.Equal(t, added[0].Id, got.Id)
		assert.True(t, got.UpdatedAt.After(got.InsertedAt) || got.UpdatedAt.Equal(got.InsertedAt))

		_, err = repo.FindVerseByText(ctx, poem.Id, "قفا نبك")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		verses, err := repo.FetchAllVerses(ctx)
		require.NoError(t, err)
		require.Len(t, verses, 2)
		assert.Equal(t, "بسقط اللوى", verses[0].Text)
		assert.Equal(t, "قفا نبك من ذكرى", verses[1].Text)
	})

	t.Run("duplicate text rejected", func(t *testing.T) {
		updated := *added[1]
		updated.Text = "قفا نبك من ذكرى"
		_, err := repo.UpdateVerses(ctx, &updated)
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})

	t.Run("missing verse", func(t *testing.T) {
		_, err := repo.UpdateVerses(ctx, &core.Verse{Id: 9999, PoemId: poem.Id, VerseNo: 1})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDeleteVerses(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	poem := addPoem(t, repo, "المعلقة")

	added, err := repo.AddVerses(ctx,
		&core.Verse{PoemId: poem.Id, VerseNo: 1, Text: "قفا نبك"},
		&core.Verse{PoemId: poem.Id, VerseNo: 2, Text: "بسقط اللوى"},
	)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteVerses(ctx, added[0].Id))

	_, err = repo.GetVerse(ctx, added[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	verses, err := repo.FetchAllVerses(ctx)
	require.NoError(t, err)
	require.Len(t, verses, 1)
	assert.Equal(t, added[1].Id, verses[0].Id)

	// The text can be reused once the verse is gone
	_, err = repo.AddVerses(ctx, &core.Verse{PoemId: poem.Id, VerseNo: 3, Text: "قفا نبك"})
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.DeleteVerses(ctx, core.ID(9999)), storage.ErrNotFound)
}

func TestGetVerses(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	poem := addPoem(t, repo, "المعلقة")

	added, err := repo.AddVerses(ctx, &core.Verse{PoemId: poem.Id, VerseNo: 1, Text: "قفا نبك"})
	require.NoError(t, err)

	verses, err := repo.GetVerses(ctx, added[0].Id, core.ID(9999))
	require.NoError(t, err)
	require.Len(t, verses, 1)
	assert.Equal(t, added[0].Id, verses[0].Id)
}

func TestDeletePoems(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	kept := addPoem(t, repo, "معلقة طرفة")
	removed := addPoem(t, repo, "معلقة امرئ القيس")

	_, err := repo.AddVerses(ctx,
		&core.Verse{PoemId: removed.Id, VerseNo: 1, Text: "قفا نبك من ذكرى حبيب ومنزل"},
		&core.Verse{PoemId: removed.Id, VerseNo: 2, Text: "بسقط اللوى بين الدخول فحومل"},
		&core.Verse{PoemId: kept.Id, VerseNo: 1, Text: "لخولة أطلال ببرقة ثهمد"},
	)
	require.NoError(t, err)

	require.NoError(t, repo.DeletePoems(ctx, removed.Id))

	_, err = repo.GetPoem(ctx, removed.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	verses, err := repo.FetchAllVerses(ctx)
	require.NoError(t, err)
	require.Len(t, verses, 1)
	assert.Equal(t, kept.Id, verses[0].PoemId)

	count, err := repo.CountVerses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The content index was cleared, so the same text can be stored again.
	_, err = repo.FindVerseByText(ctx, removed.Id, "قفا نبك من ذكرى حبيب ومنزل")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, repo.DeletePoems(ctx, removed.Id), storage.ErrNotFound)
}
