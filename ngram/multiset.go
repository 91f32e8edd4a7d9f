package ngram

import (
	"cmp"
	"slices"
)

// Matcher counts the multiset intersection of two sequences.
// Every Matcher returns sum(min(count_a(v), count_b(v))) over distinct v.
type Matcher func(a, b []string) int

// Available matchers. Both produce identical counts.
var (
	// Greedy is IntersectionCount over strings, O(len(a)*len(b)).
	Greedy Matcher = IntersectionCount[string]

	// Sorted is SortedIntersectionCount over strings, O(n log n).
	Sorted Matcher = SortedIntersectionCount[string]
)

// IntersectionCount returns the multiset intersection size of a and b.
//
// Each element of a consumes the first unconsumed equal element of b, if any.
// Every match consumes one unit from each side, so the count is the same no
// matter which equal instance is picked.
func IntersectionCount[T comparable](a, b []T) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	consumed := make([]bool, len(b))
	count := 0
	for _, x := range a {
		for j, y := range b {
			if !consumed[j] && x == y {
				consumed[j] = true
				count++
				break
			}
		}
	}
	return count
}

// SortedIntersectionCount returns the same count as IntersectionCount by
// sorting copies of both inputs and merging them.
func SortedIntersectionCount[T cmp.Ordered](a, b []T) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	sa := slices.Clone(a)
	sb := slices.Clone(b)
	slices.Sort(sa)
	slices.Sort(sb)

	count := 0
	for i, j := 0, 0; i < len(sa) && j < len(sb); {
		switch c := cmp.Compare(sa[i], sb[j]); {
		case c == 0:
			count++
			i++
			j++
		case c < 0:
			i++
		default:
			j++
		}
	}
	return count
}

// CountCommonWords is IntersectionCount applied to word sequences.
func CountCommonWords(a, b []string) int {
	return IntersectionCount(a, b)
}
