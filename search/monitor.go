package search

import (
	"github.com/poiesic/versesim/core"
)

// SearchMonitor provides hooks to observe the search process.
// Hooks are called from the goroutine running the search, in scan order,
// even when verses are scored in parallel.
type SearchMonitor interface {
	Start(query Query)
	AfterTargetAnalysis(grams, words []string)
	AfterCorpusFetch(verses []*core.Verse)
	Match(result *core.MatchResult)
	VerseFailed(verse *core.Verse, err error)
	Finish(report *Report)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Query)                      {}
func (n *noopMonitor) AfterTargetAnalysis(_, _ []string)  {}
func (n *noopMonitor) AfterCorpusFetch(_ []*core.Verse)   {}
func (n *noopMonitor) Match(_ *core.MatchResult)          {}
func (n *noopMonitor) VerseFailed(_ *core.Verse, _ error) {}
func (n *noopMonitor) Finish(_ *Report)                   {}
