package engine

import (
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/bastiangx/wordsieve/pkg/constraint"
	"github.com/bastiangx/wordsieve/pkg/corpus"
	"github.com/bastiangx/wordsieve/pkg/daily"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var (
	testWords  = []string{"arose", "bears", "cramp", "crane", "ghoul", "manor", "mount", "party", "slate", "spare", "stare", "tarot", "thump"}
	testCommon = []string{"slate", "crane", "party", "mount"}
	testPast   = []string{"crane", "tarot", "party"}
	testDay    = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
)

func loaded(t *testing.T) *Engine {
	t.Helper()
	c, err := corpus.New(testWords, testCommon, testPast)
	require.NoError(t, err)
	e := New(WithClock(func() time.Time { return testDay }))
	require.NoError(t, e.Load(c))
	return e
}

func TestQueriesBeforeLoad(t *testing.T) {
	e := New()
	assert.False(t, e.Ready())

	_, err := e.Candidates(constraint.Query{})
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = e.RankCandidates(constraint.Query{})
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = e.BestStartingWords(5)
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = e.StrategicProbes([]string{"crane"}, constraint.Pattern{}, 0, 5)
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = e.DailyPick(0)
	assert.ErrorIs(t, err, ErrNotReady)

	assert.Equal(t, map[string]int{"loads": 0}, e.Stats())
	assert.ErrorIs(t, e.Load(nil), ErrNilCorpus)
}

func TestRankCandidates(t *testing.T) {
	e := loaded(t)

	testCases := []struct {
		query       constraint.Query
		expected    []string
		description string
	}{
		{constraint.ParseQuery("_a___", "", "", false), []string{"manor", "party", "tarot"}, "green a"},
		{constraint.ParseQuery("_a___", "", "", true), []string{"manor"}, "green a without past answers"},
		{constraint.ParseQuery("", "r:1", "c,m,p", false), []string{"arose", "bears", "stare", "tarot"}, "yellow r with grays"},
		{constraint.ParseQuery("a____", "", "a", false), []string{}, "contradiction"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			ranked, err := e.RankCandidates(tc.query)
			require.NoError(t, err)

			words := make([]string, len(ranked))
			for i, s := range ranked {
				words[i] = s.Word
				assert.Equal(t, i+1, s.Rank)
			}
			assert.ElementsMatch(t, tc.expected, words)

			candidates, err := e.Candidates(tc.query)
			require.NoError(t, err)
			assert.ElementsMatch(t, candidates, words, "ranking is a permutation of the filtered set")
		})
	}
}

func TestPastAnswerRanksAboveOthers(t *testing.T) {
	e := loaded(t)
	ranked, err := e.RankCandidates(constraint.ParseQuery("_a___", "", "", false))
	require.NoError(t, err)
	require.NotEmpty(t, ranked)
	assert.Contains(t, testPast, ranked[0].Word)
}

func TestBestStartingWords(t *testing.T) {
	e := loaded(t)

	best, err := e.BestStartingWords(3)
	require.NoError(t, err)
	assert.Len(t, best, 3)
	for _, w := range best {
		assert.NotContains(t, testPast, w)
	}

	all, err := e.BestStartingWords(1000)
	require.NoError(t, err)
	assert.Len(t, all, len(testWords)-len(testPast))
	assert.Equal(t, best, all[:3], "shorter lists are prefixes of longer ones")

	best[0] = "zzzzz"
	again, err := e.BestStartingWords(3)
	require.NoError(t, err)
	assert.NotEqual(t, "zzzzz", again[0], "callers get a copy")

	none, err := e.BestStartingWords(0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStrategicProbes(t *testing.T) {
	e := loaded(t)
	q := constraint.ParseQuery("_a___", "", "", false)
	candidates, err := e.Candidates(q)
	require.NoError(t, err)

	probes, err := e.StrategicProbes(candidates, q.Correct, q.Excluded, 5)
	require.NoError(t, err)
	for _, p := range probes {
		assert.NotContains(t, candidates, p.Word)
		assert.NotContains(t, p.Word, "a")
	}

	empty, err := e.StrategicProbes(nil, q.Correct, q.Excluded, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDailyPick(t *testing.T) {
	e := loaded(t)

	first, err := e.DailyPick(0)
	require.NoError(t, err)
	assert.Contains(t, testPast, first)

	again, err := e.DailyPick(0)
	require.NoError(t, err)
	assert.Equal(t, first, again, "same day, same offset")

	neg, err := e.DailyPick(-4)
	require.NoError(t, err)
	assert.Equal(t, first, neg, "negative offsets clamp to zero")

	c, err := corpus.New(testWords, nil, nil)
	require.NoError(t, err)
	require.NoError(t, e.Load(c))
	fallback, err := e.DailyPick(0)
	require.NoError(t, err)
	assert.Equal(t, daily.FallbackWord, fallback)
}

func TestLoadIsIdempotent(t *testing.T) {
	e := loaded(t)
	q := constraint.ParseQuery("", "r:1", "", false)
	before, err := e.RankCandidates(q)
	require.NoError(t, err)

	c, err := corpus.New(testWords, testCommon, testPast)
	require.NoError(t, err)
	require.NoError(t, e.Load(c))

	after, err := e.RankCandidates(q)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 2, e.Stats()["loads"])
}

func TestStats(t *testing.T) {
	stats := loaded(t).Stats()
	assert.Equal(t, len(testWords), stats["totalWords"])
	assert.Equal(t, len(testPast), stats["pastAnswers"])
	assert.Equal(t, len(testCommon), stats["commonWords"])
	assert.Equal(t, len(testWords)-len(testPast), stats["startingWords"])
	assert.Equal(t, len(testPast), stats["dailyPool"])
}

func TestConcurrentQueriesDuringReload(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 200},
		{workers: 4, iterationsPerWorker: 50},
		{workers: 8, iterationsPerWorker: 25},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			e := loaded(t)
			c, err := corpus.New(testWords, testCommon, testPast)
			require.NoError(t, err)

			baselineGoroutines := runtime.NumGoroutine()
			q := constraint.ParseQuery("_a___", "", "", false)

			var wg sync.WaitGroup
			errs := make(chan error, config.workers)
			for worker := 0; worker < config.workers; worker++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for iter := 0; iter < config.iterationsPerWorker; iter++ {
						ranked, err := e.RankCandidates(q)
						if err != nil {
							errs <- err
							return
						}
						if len(ranked) != 3 {
							errs <- fmt.Errorf("got %d candidates during reload", len(ranked))
							return
						}
					}
				}()
			}
			for i := 0; i < 5; i++ {
				require.NoError(t, e.Load(c))
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				t.Error(err)
			}
			if delta := runtime.NumGoroutine() - baselineGoroutines; delta > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", delta)
			}
		})
	}
}
