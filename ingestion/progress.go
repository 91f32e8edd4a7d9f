package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how many verses of a book have been stored.
type ProgressTracker struct {
	mu       sync.Mutex
	writer   io.Writer
	total    int
	done     int
	every    int
	reported int
	start    time.Time
	running  bool
}

// NewProgressTracker creates a tracker writing to writer every `every` verses.
// A nil writer discards progress.
func NewProgressTracker(writer io.Writer, total, every int) *ProgressTracker {
	if writer == nil {
		writer = io.Discard
	}
	if every < 1 {
		every = 1
	}
	return &ProgressTracker{writer: writer, total: total, every: every}
}

// Start resets the counters and starts the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.start = time.Now()
	p.running = true
	p.done = 0
	p.reported = 0
}

// Add records delta more verses as handled.
func (p *ProgressTracker) Add(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.done = min(p.done+delta, p.total)
	if p.done-p.reported >= p.every {
		p.print()
		p.reported = p.done
	}
}

// Done returns the number of verses handled so far.
func (p *ProgressTracker) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Finish prints the final line. The count is left as is so that an
// interrupted import shows where it stopped.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.running = false
	p.print()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time since Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.start.IsZero() {
		return 0
	}
	return time.Since(p.start)
}

// print must be called with the lock held.
func (p *ProgressTracker) print() {
	rate := 0.0
	if secs := time.Since(p.start).Seconds(); secs > 0 {
		rate = float64(p.done) / secs
	}
	pct := 0.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total) * 100.0
	}
	fmt.Fprintf(p.writer, "\rImported %d/%d verses (%.1f%%) - %.1f verses/s", p.done, p.total, pct, rate)
}
