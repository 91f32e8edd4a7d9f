package ingestion

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBook = `Some header content
الكتاب : المعلقات
[معلقة امرئ القيس]
(قفا نبك من ذكرى حبيب ومنزل)
(بسقط اللوى بين الدخول فحومل)
[معلقة طرفة]
(لخولة أطلال ببرقة ثهمد)
`

func TestParseBook(t *testing.T) {
	book, err := ParseBook(strings.NewReader(sampleBook))
	require.NoError(t, err)

	assert.Equal(t, "المعلقات", book.Title)
	require.Len(t, book.Poems, 2)
	assert.Equal(t, "معلقة امرئ القيس", book.Poems[0].Title)
	assert.Equal(t, []string{"قفا نبك من ذكرى حبيب ومنزل", "بسقط اللوى بين الدخول فحومل"}, book.Poems[0].Verses)
	assert.Equal(t, "معلقة طرفة", book.Poems[1].Title)
	assert.Equal(t, []string{"لخولة أطلال ببرقة ثهمد"}, book.Poems[1].Verses)
	assert.Equal(t, 3, book.VerseCount())
}

func TestParseBook_Cases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		title string
		poems []PoemText
	}{
		{
			name:  "latin book",
			input: "Some header content\nالكتاب : Test Book Title\n[Poem 1]\n(Verse 1 of Poem 1)\n(Verse 2 of Poem 1)\n[Poem 2]\n(Verse 1 of Poem 2)",
			title: "Test Book Title",
			poems: []PoemText{
				{Title: "Poem 1", Verses: []string{"Verse 1 of Poem 1", "Verse 2 of Poem 1"}},
				{Title: "Poem 2", Verses: []string{"Verse 1 of Poem 2"}},
			},
		},
		{
			name:  "missing title line",
			input: "No title marker here\n[Poem 1]\n(Verse 1)",
			title: Untitled,
			poems: []PoemText{{Title: "Poem 1", Verses: []string{"Verse 1"}}},
		},
		{
			name:  "blank title line",
			input: "الكتاب :   \n[Poem]\n(Verse)",
			title: Untitled,
			poems: []PoemText{{Title: "Poem", Verses: []string{"Verse"}}},
		},
		{
			name:  "poem without verses is dropped",
			input: "[Empty]\nno verses here\n[Full]\n(one)",
			title: Untitled,
			poems: []PoemText{{Title: "Full", Verses: []string{"one"}}},
		},
		{
			name:  "blank verses and poem title",
			input: "[ ]\n(  )\n( kept )",
			title: Untitled,
			poems: []PoemText{{Title: Untitled, Verses: []string{"kept"}}},
		},
		{
			name:  "several verses on one line and CRLF",
			input: "الكتاب : Book\r\n[P]\r\n(a) (b)\r\n",
			title: "Book",
			poems: []PoemText{{Title: "P", Verses: []string{"a", "b"}}},
		},
		{
			name:  "verses before any poem are ignored",
			input: "(orphan)\n[P]\n(a)",
			title: Untitled,
			poems: []PoemText{{Title: "P", Verses: []string{"a"}}},
		},
		{
			name:  "empty input",
			input: "",
			title: Untitled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, err := ParseBook(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.title, book.Title)
			assert.Equal(t, tt.poems, book.Poems)
		})
	}
}

type brokenReader struct{}

func (brokenReader) Read(_ []byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseBook_ReadError(t *testing.T) {
	_, err := ParseBook(brokenReader{})
	assert.ErrorContains(t, err, "disk on fire")
}
