// Package ingestion imports poetry books into a verse repository.
//
// A book is plain UTF-8 text. An optional line starting with "الكتاب :"
// names the book, each "[title]" opens a poem and every "(text)" after it is
// a verse of that poem. Poems without verses are ignored.
//
// The Importer stores poems and verses through storage.VerseRepository in
// batches. Verses repeating the text of an earlier verse of the same poem are
// counted as duplicates and left out.
package ingestion
