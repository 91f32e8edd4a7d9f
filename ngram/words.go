package ngram

import "strings"

// SplitWords normalizes text and splits it into words, left to right.
// Runes outside the comparable class are dropped before splitting.
func (n *Normalizer) SplitWords(text string) []string {
	return strings.Fields(n.Normalize(text))
}

// SplitWords splits text into words with the Default normalizer.
func SplitWords(text string) []string {
	return Default.SplitWords(text)
}
