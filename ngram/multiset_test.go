package ngram

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// referenceCount computes sum(min(count_a(v), count_b(v))) with maps.
func referenceCount(a, b []string) int {
	counts := make(map[string]int, len(b))
	for _, v := range b {
		counts[v]++
	}
	total := 0
	for _, v := range a {
		if counts[v] > 0 {
			counts[v]--
			total++
		}
	}
	return total
}

func TestIntersectionCount(t *testing.T) {
	abcabc := Generate("ABCABC", 3)

	tests := []struct {
		name string
		a, b []string
		want int
	}{
		{"self with repeats", abcabc, abcabc, 4},
		{"shifted bigrams", Generate("ABCD", 2), Generate("BCDE", 2), 2},
		{"repeats limited by supply", []string{"x", "x", "x"}, []string{"x"}, 1},
		{"repeats on both sides", []string{"x", "x", "y"}, []string{"y", "x", "x", "x"}, 3},
		{"disjoint", []string{"a"}, []string{"b"}, 0},
		{"empty a", nil, []string{"a"}, 0},
		{"empty b", []string{"a"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntersectionCount(tt.a, tt.b))
			assert.Equal(t, tt.want, IntersectionCount(tt.b, tt.a))
			assert.Equal(t, tt.want, SortedIntersectionCount(tt.a, tt.b))
			assert.Equal(t, tt.want, Greedy(tt.a, tt.b))
			assert.Equal(t, tt.want, Sorted(tt.a, tt.b))
		})
	}
}

func TestIntersectionCount_Generic(t *testing.T) {
	assert.Equal(t, 2, IntersectionCount([]int{1, 2, 2, 3}, []int{2, 2, 4}))
	assert.Equal(t, 2, SortedIntersectionCount([]int{1, 2, 2, 3}, []int{2, 2, 4}))
}

func TestIntersectionCount_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []string{"قف", "فا", "ا ", " ن", "نب", "بك"}

	randomSeq := func() []string {
		seq := make([]string, rng.IntN(20))
		for i := range seq {
			seq[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return seq
	}

	for i := 0; i < 500; i++ {
		a, b := randomSeq(), randomSeq()
		want := referenceCount(a, b)

		assert.Equal(t, want, IntersectionCount(a, b))
		assert.Equal(t, want, IntersectionCount(b, a))
		assert.Equal(t, want, SortedIntersectionCount(a, b))
		assert.LessOrEqual(t, want, min(len(a), len(b)))
	}
}

func TestSortedIntersectionCount_DoesNotMutate(t *testing.T) {
	a := []string{"c", "b", "a"}
	b := []string{"b", "a"}
	SortedIntersectionCount(a, b)
	assert.Equal(t, []string{"c", "b", "a"}, a)
	assert.Equal(t, []string{"b", "a"}, b)
}

func TestCountCommonWords(t *testing.T) {
	a := SplitWords("من ذكرى حبيب ومنزل من")
	b := SplitWords("من حبيب من من")
	assert.Equal(t, 3, CountCommonWords(a, b))
}
