package search

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/versesim/core"
	"github.com/poiesic/versesim/ngram"
	"github.com/poiesic/versesim/storage"
)

const poolReleaseTimeout = 5 * time.Second

// Searcher ranks corpus verses by n-gram similarity to a target text.
type Searcher struct {
	corpus     storage.CorpusProvider
	normalizer *ngram.Normalizer
	matcher    ngram.Matcher
	monitor    SearchMonitor
	workers    int
	limit      int
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithNormalizer sets the normalizer applied to the target and every verse.
// Default is ngram.Default, which keeps Arabic letters only.
func WithNormalizer(normalizer *ngram.Normalizer) Option {
	return func(s *Searcher) error {
		if normalizer == nil {
			return ErrNormalizerRequired
		}
		s.normalizer = normalizer
		return nil
	}
}

// WithMatcher sets the multiset intersection strategy.
// Default is ngram.Greedy.
func WithMatcher(matcher ngram.Matcher) Option {
	return func(s *Searcher) error {
		if matcher == nil {
			return ErrMatcherRequired
		}
		s.matcher = matcher
		return nil
	}
}

// WithWorkers sets how many verses are scored concurrently.
// Default is 1, a sequential scan.
func WithWorkers(workers int) Option {
	return func(s *Searcher) error {
		if workers < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
		}
		s.workers = workers
		return nil
	}
}

// WithMonitor sets the monitor used by Search and FindSimilarVerses.
func WithMonitor(monitor SearchMonitor) Option {
	return func(s *Searcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// WithLimit caps the number of results. Zero means no limit.
func WithLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit < 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
		}
		s.limit = limit
		return nil
	}
}

// NewSearcher creates a new searcher over the given corpus.
// Call Release when the searcher was configured with more than one worker.
func NewSearcher(corpus storage.CorpusProvider, opts ...Option) (*Searcher, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}

	s := &Searcher{
		corpus:     corpus,
		normalizer: ngram.Default,
		matcher:    ngram.Greedy,
		monitor:    &noopMonitor{},
		workers:    1,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.workers > 1 {
		pool, err := ants.NewPool(s.workers)
		if err != nil {
			return nil, fmt.Errorf("failed to create scoring pool: %w", err)
		}
		s.pool = pool
	}

	return s, nil
}

// Release stops the scoring pool, if any.
// The searcher should not be used after calling Release.
func (s *Searcher) Release() {
	if s.pool == nil {
		return
	}
	if err := s.pool.ReleaseTimeout(poolReleaseTimeout); err != nil {
		s.logger.Warn("scoring pool did not stop in time", "err", err)
	}
	s.pool = nil
}

// FindSimilarVerses returns the verses whose similarity to target is at least
// minSimilarity, highest first. It never fails: problems are logged and
// yield fewer or no results.
func (s *Searcher) FindSimilarVerses(ctx context.Context, target string, n int, minSimilarity float64) []*core.MatchResult {
	report, err := s.Search(ctx, Query{Text: target, N: n, MinSimilarity: minSimilarity})
	if err != nil {
		s.logger.Error("similarity search failed", "n", n, "min_similarity", minSimilarity, "err", err)
	}
	if report == nil {
		return []*core.MatchResult{}
	}
	return report.Results
}

// Search runs the query and reports the ranked results with scan statistics.
// The report is never nil. On error it holds whatever was found before the
// failure, which is nothing when the corpus could not be fetched.
func (s *Searcher) Search(ctx context.Context, query Query) (*Report, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor is Search with a monitor overriding the configured one.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query Query, monitor SearchMonitor) (report *Report, err error) {
	if monitor == nil {
		monitor = s.monitor
	}
	report = newReport()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSearchAborted, r)
		}
	}()

	monitor.Start(query)
	defer func() { monitor.Finish(report) }()

	if err := query.Validate(); err != nil {
		return report, err
	}

	normalized := s.normalizer.Normalize(query.Text)
	if normalized == "" {
		s.logger.Debug("target has no comparable characters")
		return report, nil
	}

	targetGrams := ngram.Generate(normalized, query.N)
	targetWords := strings.Fields(normalized)
	report.TargetGramCount = len(targetGrams)
	report.TargetWordCount = len(targetWords)
	monitor.AfterTargetAnalysis(targetGrams, targetWords)

	if len(targetGrams) == 0 {
		s.logger.Debug("target shorter than n-gram size", "n", query.N)
		return report, nil
	}

	verses, err := s.fetch(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrCorpusUnavailable, err)
	}
	report.Fetched = len(verses)
	monitor.AfterCorpusFetch(verses)
	s.logger.Debug("scanning corpus", "verses", len(verses), "target_grams", len(targetGrams))

	t := &target{grams: targetGrams, words: targetWords, n: query.N, minSimilarity: query.MinSimilarity}
	outcomes, err := s.scan(ctx, t, verses)

	for i, o := range outcomes {
		switch o.status {
		case statusPending:
			continue
		case statusSkipped:
			report.Skipped++
		case statusFailed:
			report.Failed++
			s.logger.Warn("skipping verse", "verse_id", verseID(verses[i]), "err", o.err)
			monitor.VerseFailed(verses[i], o.err)
		case statusScanned:
			report.Scanned++
			if o.result != nil {
				report.Results = append(report.Results, o.result)
				monitor.Match(o.result)
			}
		}
	}

	slices.SortStableFunc(report.Results, func(a, b *core.MatchResult) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})
	if s.limit > 0 && len(report.Results) > s.limit {
		report.Results = report.Results[:s.limit]
	}

	s.logger.Debug("search complete",
		"matches", len(report.Results),
		"scanned", report.Scanned,
		"skipped", report.Skipped,
		"failed", report.Failed)

	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrSearchAborted, err)
	}
	return report, nil
}

type target struct {
	grams         []string
	words         []string
	n             int
	minSimilarity float64
}

type status int

const (
	statusPending status = iota
	statusScanned
	statusSkipped
	statusFailed
)

type outcome struct {
	status status
	result *core.MatchResult
	err    error
}

// fetch loads the corpus, turning a provider panic into an error.
func (s *Searcher) fetch(ctx context.Context) (verses []*core.Verse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("corpus provider panicked: %v", r)
		}
	}()
	return s.corpus.FetchAllVerses(ctx)
}

// scan scores every verse into its own slot so that the outcome order matches
// corpus order regardless of how many workers ran.
func (s *Searcher) scan(ctx context.Context, t *target, verses []*core.Verse) ([]outcome, error) {
	outcomes := make([]outcome, len(verses))

	if s.pool == nil {
		for i, verse := range verses {
			if err := ctx.Err(); err != nil {
				return outcomes, err
			}
			outcomes[i] = s.score(t, verse)
		}
		return outcomes, nil
	}

	var wg sync.WaitGroup
	var scanErr error
	for i, verse := range verses {
		if err := ctx.Err(); err != nil {
			scanErr = err
			break
		}
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = s.score(t, verse)
		})
		if err != nil {
			wg.Done()
			outcomes[i] = outcome{status: statusFailed, err: fmt.Errorf("failed to schedule verse: %w", err)}
		}
	}
	wg.Wait()
	return outcomes, scanErr
}

// score compares one verse against the target. A panic while scoring fails
// only this verse.
func (s *Searcher) score(t *target, verse *core.Verse) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = outcome{status: statusFailed, err: fmt.Errorf("scoring panicked: %v", r)}
		}
	}()

	if verse == nil || strings.TrimSpace(verse.Text) == "" {
		return outcome{status: statusSkipped}
	}

	normalized := s.normalizer.Normalize(verse.Text)
	grams := ngram.Generate(normalized, t.n)
	if len(grams) == 0 {
		return outcome{status: statusSkipped}
	}

	intersection := s.matcher(t.grams, grams)
	similarity := ngram.Score(len(t.grams), intersection)
	if similarity < t.minSimilarity {
		return outcome{status: statusScanned}
	}

	return outcome{
		status: statusScanned,
		result: &core.MatchResult{
			Verse:             verse,
			Similarity:        similarity,
			TargetGramCount:   len(t.grams),
			VerseGramCount:    len(grams),
			IntersectionCount: intersection,
			CommonWordCount:   s.matcher(t.words, strings.Fields(normalized)),
		},
	}
}

func verseID(verse *core.Verse) core.ID {
	if verse == nil {
		return 0
	}
	return verse.Id
}
