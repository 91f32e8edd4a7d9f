package search

import (
	"fmt"

	"github.com/poiesic/versesim/core"
)

// Query describes a similarity search.
type Query struct {
	// Text is the target text. It is normalized before use.
	Text string

	// N is the n-gram size in runes.
	N int

	// MinSimilarity is the inclusive threshold, in percent.
	MinSimilarity float64
}

// Validate checks the window size and threshold.
func (q Query) Validate() error {
	if q.N < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWindow, q.N)
	}
	if q.MinSimilarity < 0 || q.MinSimilarity > 100 {
		return fmt.Errorf("%w: got %g", ErrInvalidThreshold, q.MinSimilarity)
	}
	return nil
}

// Report is the outcome of a search.
type Report struct {
	// Results are ordered by similarity, highest first.
	Results []*core.MatchResult

	TargetGramCount int
	TargetWordCount int

	Fetched int // Verses returned by the corpus provider
	Scanned int // Verses that were scored
	Skipped int // Verses without text or too short for N
	Failed  int // Verses whose scoring failed
}

func newReport() *Report {
	return &Report{Results: []*core.MatchResult{}}
}
