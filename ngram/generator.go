package ngram

import "strings"

// Generate returns the overlapping windows of size runes over text, left to
// right. Whitespace runs are collapsed first; no other filtering is applied,
// use Normalizer.Grams for normalized input.
//
// Text with fewer than size runes, or size < 1, yields no grams. For text of
// L runes the result has exactly L-size+1 grams.
func Generate(text string, size int) []string {
	if size < 1 || text == "" {
		return nil
	}

	runes := []rune(collapseSpace(text))
	if len(runes) < size {
		return nil
	}

	grams := make([]string, 0, len(runes)-size+1)
	for i := 0; i+size <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+size]))
	}
	return grams
}

// collapseSpace trims text and replaces whitespace runs with one space.
func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
