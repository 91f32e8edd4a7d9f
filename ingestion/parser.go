package ingestion

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Untitled names books without a title line and poems with an empty title.
const Untitled = "Untitled"

const titleMarker = "الكتاب :"

var (
	poemPattern  = regexp.MustCompile(`\[(.*?)\]`)
	versePattern = regexp.MustCompile(`\((.*?)\)`)
)

// Book is the parsed content of a book file.
type Book struct {
	Title string
	Poems []PoemText
}

// PoemText is a poem as it appears in a book, before it is stored.
type PoemText struct {
	Title  string
	Verses []string
}

// VerseCount returns the number of verses across all poems.
func (b *Book) VerseCount() int {
	count := 0
	for _, poem := range b.Poems {
		count += len(poem.Verses)
	}
	return count
}

// ParseBook reads a book from r.
// A poem runs from its "[title]" to the next "[" in the text.
func ParseBook(r io.Reader) (*Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read book: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	book := &Book{Title: bookTitle(text)}

	for _, loc := range poemPattern.FindAllStringSubmatchIndex(text, -1) {
		start := loc[1]
		end := len(text)
		if next := strings.Index(text[start:], "["); next >= 0 {
			end = start + next
		}

		var verses []string
		for _, m := range versePattern.FindAllStringSubmatch(text[start:end], -1) {
			if verse := strings.TrimSpace(m[1]); verse != "" {
				verses = append(verses, verse)
			}
		}
		if len(verses) == 0 {
			continue
		}

		title := strings.TrimSpace(text[loc[2]:loc[3]])
		if title == "" {
			title = Untitled
		}
		book.Poems = append(book.Poems, PoemText{Title: title, Verses: verses})
	}

	return book, nil
}

func bookTitle(text string) string {
	i := strings.Index(text, titleMarker)
	if i < 0 {
		return Untitled
	}
	rest := text[i+len(titleMarker):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	if title := strings.TrimSpace(rest); title != "" {
		return title
	}
	return Untitled
}
