package badger

import (
	"encoding/binary"

	"github.com/poiesic/versesim/core"
)

// Key prefixes for different data types
const (
	versePrefix        = "verse:"
	verseOrderPrefix   = "versep:"
	verseContentPrefix = "versec:"
	verseIDSeq         = "verseseq"
	poemPrefix         = "poem:"
	poemIDSeq          = "poemseq"
)

// appendUint64 writes v in BigEndian order so lexicographic sort matches numeric sort.
func appendUint64(buf []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(buf, v)
}

// makeVerseKey generates a key for a verse by ID.
func makeVerseKey(id core.ID) []byte {
	return appendUint64([]byte(versePrefix), uint64(id))
}

// makeVerseOrderKey generates a composite key for the corpus order index.
// Format: prefix:poemID:verseNo:id
func makeVerseOrderKey(verse *core.Verse) []byte {
	buf := make([]byte, 0, len(verseOrderPrefix)+24)
	buf = append(buf, verseOrderPrefix...)
	buf = appendUint64(buf, uint64(verse.PoemId))
	buf = appendUint64(buf, uint64(verse.VerseNo))
	return appendUint64(buf, uint64(verse.Id))
}

// makePartialVerseOrderKey generates a partial key for listing a poem's verses.
// Format: prefix:poemID
func makePartialVerseOrderKey(poemID core.ID) []byte {
	return appendUint64([]byte(verseOrderPrefix), uint64(poemID))
}

// makeVerseContentKey generates a key for the duplicate text index.
func makeVerseContentKey(verse *core.Verse) []byte {
	return appendUint64([]byte(verseContentPrefix), uint64(verse.ContentKey()))
}

// makePoemKey generates a key for a poem by ID.
func makePoemKey(id core.ID) []byte {
	return appendUint64([]byte(poemPrefix), uint64(id))
}
