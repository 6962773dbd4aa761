package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bastiangx/wordsieve/pkg/constraint"
	"github.com/bastiangx/wordsieve/pkg/corpus"
	"github.com/bastiangx/wordsieve/pkg/daily"
	"github.com/bastiangx/wordsieve/pkg/freq"
	"github.com/bastiangx/wordsieve/pkg/probe"
	"github.com/bastiangx/wordsieve/pkg/score"
	"github.com/charmbracelet/log"
)

var (
	// ErrNotReady is returned by every query issued before Load.
	ErrNotReady  = errors.New("engine not ready: corpus not loaded")
	ErrNilCorpus = errors.New("nil corpus")
)

var _ ISolver = (*Engine)(nil)

// snapshot is everything derived from one corpus. It is never mutated
// after Load publishes it.
type snapshot struct {
	corpus    *corpus.Corpus
	model     *freq.Model
	scorer    *score.Scorer
	best      []string
	dailyPool []string
	buildTime time.Duration
}

// Engine serves queries against the most recently loaded corpus.
// It is safe for concurrent use; Load may run while queries are in flight.
type Engine struct {
	state atomic.Pointer[snapshot]
	clock func() time.Time
	loads atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used by DailyPick.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.clock = now }
}

// New returns an engine that rejects queries until Load is called.
func New(opts ...Option) *Engine {
	e := &Engine{clock: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load builds the frequency model, the scorer, the best-starting list and
// the daily pool, then swaps them in as one unit.
func (e *Engine) Load(c *corpus.Corpus) error {
	if c == nil {
		return fmt.Errorf("load: %w", ErrNilCorpus)
	}
	start := time.Now()

	m := freq.Build(c)
	s := score.New(c, m)
	snap := &snapshot{
		corpus:    c,
		model:     m,
		scorer:    s,
		best:      s.BestStarting(),
		dailyPool: s.TopWords(c.PastAnswers(), daily.PoolSize),
	}
	snap.buildTime = time.Since(start)

	e.state.Store(snap)
	e.loads.Add(1)
	log.Debugf("Engine loaded %d words (%d past, %d common) in %v",
		c.Len(), len(c.PastAnswers()), len(c.CommonWords()), snap.buildTime)
	return nil
}

func (e *Engine) current() (*snapshot, error) {
	snap := e.state.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap, nil
}

// Ready reports whether a corpus has been loaded.
func (e *Engine) Ready() bool {
	return e.state.Load() != nil
}

// Candidates returns the dictionary words consistent with q, in corpus order.
func (e *Engine) Candidates(q constraint.Query) ([]string, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	return constraint.Filter(snap.corpus, q), nil
}

// RankCandidates filters the dictionary with q and ranks what is left.
// An empty list means no word fits.
func (e *Engine) RankCandidates(q constraint.Query) ([]score.Suggestion, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	return snap.scorer.Rank(constraint.Filter(snap.corpus, q)), nil
}

// BestStartingWords returns up to count words that have never been an
// answer, best first. The list is computed once per Load.
func (e *Engine) BestStartingWords(count int) ([]string, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	n := min(max(count, 0), len(snap.best))
	out := make([]string, n)
	copy(out, snap.best[:n])
	return out, nil
}

// StrategicProbes returns up to count non-candidate words that best split
// candidates. Words sharing a green or excluded letter are never returned.
func (e *Engine) StrategicProbes(candidates []string, correct constraint.Pattern, excluded constraint.LetterSet, count int) ([]score.Suggestion, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	return probe.Select(snap.corpus, snap.model, candidates, correct, excluded, count), nil
}

// DailyPick draws today's word from the top past answers. Offsets above
// zero give alternative picks for the same day.
func (e *Engine) DailyPick(offset int) (string, error) {
	snap, err := e.current()
	if err != nil {
		return "", err
	}
	if offset < 0 {
		offset = 0
	}
	return daily.Pick(snap.dailyPool, e.clock(), offset), nil
}

// Stats returns counters about the loaded corpus. Before Load only the
// load counter is present.
func (e *Engine) Stats() map[string]int {
	stats := map[string]int{
		"loads": int(e.loads.Load()),
	}
	snap := e.state.Load()
	if snap == nil {
		return stats
	}
	stats["totalWords"] = snap.corpus.Len()
	stats["pastAnswers"] = len(snap.corpus.PastAnswers())
	stats["commonWords"] = len(snap.corpus.CommonWords())
	stats["startingWords"] = len(snap.best)
	stats["dailyPool"] = len(snap.dailyPool)
	stats["buildTimeMs"] = int(snap.buildTime.Milliseconds())
	return stats
}
