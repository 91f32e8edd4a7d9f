package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Verse is a single line of a poem and the unit of similarity search.
// Text may be empty; such verses are never matched.
type Verse struct {
	Id              ID
	PoemId          ID
	VerseNo         int
	Text            string
	TextDiacritized string // Same verse with full vocalization, if known
	Translation     string
	Notes           string
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// ContentKey identifies the verse text within its poem.
// Two verses with the same ContentKey are duplicates.
func (v *Verse) ContentKey() ID {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v.PoemId))
	return IDFromContent(string(buf[:]) + v.Text)
}

// Poem groups verses imported from a book.
type Poem struct {
	Id         ID
	Title      string
	Book       string
	InsertedAt time.Time
}

// MatchResult is a verse that reached the similarity threshold of a search.
//
// Similarity is target-relative: IntersectionCount / TargetGramCount * 100.
// It measures how much of the query is covered by the verse and is not a
// symmetric index.
type MatchResult struct {
	Verse             *Verse
	Similarity        float64
	TargetGramCount   int
	VerseGramCount    int
	IntersectionCount int
	CommonWordCount   int
}
