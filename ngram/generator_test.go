package ngram

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want []string
	}{
		{"repeated trigrams", "ABCABC", 3, []string{"ABC", "BCA", "CAB", "ABC"}},
		{"bigrams", "ABCD", 2, []string{"AB", "BC", "CD"}},
		{"shifted bigrams", "BCDE", 2, []string{"BC", "CD", "DE"}},
		{"length equals size", "ABC", 3, []string{"ABC"}},
		{"unigrams", "AB", 1, []string{"A", "B"}},
		{"whitespace collapsed", "  A  B ", 2, []string{"A ", " B"}},
		{"arabic runes", "قفا", 2, []string{"قف", "فا"}},
		{"too short", "AB", 5, nil},
		{"empty", "", 2, nil},
		{"zero size", "ABC", 0, nil},
		{"negative size", "ABC", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.text, tt.size))
		})
	}
}

func TestGenerate_CountLaw(t *testing.T) {
	texts := []string{
		"قفا نبك من ذكرى حبيب ومنزل",
		"بسقط اللوى بين الدخول فحومل",
		"ABCDEFGHIJ",
	}

	for _, text := range texts {
		normalized := collapseSpace(text)
		length := utf8.RuneCountInString(normalized)
		for size := 1; size <= length; size++ {
			grams := Generate(normalized, size)
			assert.Len(t, grams, length-size+1, "text %q size %d", text, size)
			for _, g := range grams {
				assert.Equal(t, size, utf8.RuneCountInString(g))
			}
		}
		assert.Empty(t, Generate(normalized, length+1))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	text := "وقوفا بها صحبي علي مطيهم"
	assert.Equal(t, Generate(text, 3), Generate(text, 3))
}

func TestNormalizer_Grams(t *testing.T) {
	grams := Default.Grams("قفا، نبك!", 3)
	assert.Equal(t, []string{"قفا", "فا ", "ا ن", " نب", "نبك"}, grams)
}
