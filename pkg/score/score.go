// Package score ranks words by how likely they are to be the answer.
//
// A word's score mixes positional and letter frequencies, n-gram and suffix
// hits, shape modifiers (vowel and distinct-letter counts) and the word's
// commonality tier. Rank turns scores into ordered suggestions with a
// distribution-aware confidence percentage.
package score

import (
	"cmp"
	"math"
	"slices"

	"github.com/bastiangx/wordsieve/internal/utils"
	"github.com/bastiangx/wordsieve/pkg/corpus"
	"github.com/bastiangx/wordsieve/pkg/freq"
)

// ConfidenceNotApplicable marks suggestions that carry no confidence (probes).
const ConfidenceNotApplicable = 0.0

// Confidence bounds.
const (
	MinConfidence = 3.0
	MaxConfidence = 98.0
)

// starters are letters that open many answers.
var starters = []byte{'s', 'c', 'p', 't', 'a', 'b', 'r', 'l', 'm', 'f'}

// Suggestion is one ranked word.
type Suggestion struct {
	Word       string
	Score      float64
	Rank       int
	Confidence float64
}

// Scorer scores words against a frequency model.
type Scorer struct {
	corpus *corpus.Corpus
	model  *freq.Model
}

// New creates a Scorer. Both arguments are required; a nil model is a
// programming error and panics.
func New(c *corpus.Corpus, m *freq.Model) *Scorer {
	if c == nil || m == nil {
		panic("score: scorer requires a corpus and a built frequency model")
	}
	return &Scorer{corpus: c, model: m}
}

// Score computes the composite score of word. Additive terms accumulate
// first, then each modifier multiplies the running total in a fixed order.
func (s *Scorer) Score(word string) float64 {
	m := s.model
	var total float64
	var seen [26]bool
	vowels, unique := 0, 0

	for pos := 0; pos < len(word); pos++ {
		ch := word[pos]
		total += float64(m.PositionCount(pos, ch)) * 5.0
		if !seen[ch-'a'] {
			seen[ch-'a'] = true
			unique++
			total += float64(m.LetterCount(ch)) * 3.0
		}
		if utils.IsVowel(ch) {
			vowels++
			total += m.VowelWeight(ch) * 0.5
		}
	}

	for i := 0; i+2 <= len(word); i++ {
		total += float64(m.Bigram(word[i:i+2])) * 3.5
	}
	for i := 0; i+3 <= len(word); i++ {
		total += float64(m.Trigram(word[i:i+3])) * 4.0
	}

	if m.HasSuffix(word[len(word)-2:]) {
		total += 50
	}
	if m.HasSuffix(word[len(word)-3:]) {
		total += 75
	}

	switch {
	case vowels == 2:
		total *= 1.4
	case vowels == 1 || vowels == 3:
		total *= 1.2
	default:
		total *= 0.4
	}

	switch {
	case unique == 5:
		total *= 1.3
	case unique == 4:
	case unique == 3:
		total *= 0.7
	default:
		total *= 0.4
	}

	if s.corpus.IsPastAnswer(word) {
		total *= 1.8
	}

	commonality := m.Commonality(word)
	total += commonality * 2.0
	switch {
	case commonality > 800:
		total *= 1.5
	case commonality > 400:
		total *= 1.3
	case commonality > 200:
		total *= 1.15
	case commonality < 50:
		total *= 0.6
	}

	if slices.Contains(starters, word[0]) {
		total *= 1.15
	}
	return total
}

// Rank scores words, orders them by descending score (ties keep input
// order), numbers them from 1 and attaches a confidence computed from the
// score spread of the whole list.
func (s *Scorer) Rank(words []string) []Suggestion {
	out := make([]Suggestion, len(words))
	for i, w := range words {
		out[i] = Suggestion{Word: w, Score: s.Score(w)}
	}
	SortByScore(out)
	if len(out) == 0 {
		return out
	}

	maxScore, minScore := out[0].Score, out[len(out)-1].Score
	for i := range out {
		out[i].Rank = i + 1
		out[i].Confidence = Confidence(out[i].Score, minScore, maxScore, len(out))
	}
	return out
}

// BestStarting ranks every dictionary word that has not been an answer.
func (s *Scorer) BestStarting() []string {
	words := s.corpus.Words()
	pool := make([]string, 0, len(words))
	for _, w := range words {
		if !s.corpus.IsPastAnswer(w) {
			pool = append(pool, w)
		}
	}
	return s.TopWords(pool, len(pool))
}

// TopWords returns up to n words from pool ordered by descending score.
func (s *Scorer) TopWords(pool []string, n int) []string {
	scored := make([]Suggestion, len(pool))
	for i, w := range pool {
		scored[i] = Suggestion{Word: w, Score: s.Score(w)}
	}
	SortByScore(scored)
	n = min(max(n, 0), len(scored))
	out := make([]string, n)
	for i := range out {
		out[i] = scored[i].Word
	}
	return out
}

// SortByScore sorts descending by score, keeping the input order of ties.
func SortByScore(list []Suggestion) {
	slices.SortStableFunc(list, func(a, b Suggestion) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// Confidence converts a score into a percentage in [3, 98] relative to the
// spread [minScore, maxScore] of a list of totalWords candidates.
func Confidence(score, minScore, maxScore float64, totalWords int) float64 {
	if totalWords == 1 {
		return MaxConfidence
	}
	if maxScore == minScore {
		return 60.0
	}

	normalized := (score - minScore) / (maxScore - minScore)
	base := math.Pow(normalized, 0.4)*75 + 10

	var factor float64
	switch {
	case totalWords == 2:
		factor = 1.35
	case totalWords == 3:
		factor = 1.25
	case totalWords <= 5:
		factor = 1.20
	case totalWords <= 10:
		factor = 1.10
	case totalWords <= 20:
		factor = 0.95
	case totalWords <= 50:
		factor = 0.85
	default:
		factor = 0.70
	}

	confidence := base * factor
	if normalized == 1.0 && totalWords > 1 {
		confidence = math.Min(confidence*1.15, MaxConfidence)
	}
	return math.Max(MinConfidence, math.Min(MaxConfidence, confidence))
}
