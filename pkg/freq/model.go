// Package freq derives letter statistics from past answers and a tiered
// commonality score for every word in the corpus.
//
// A Model is built once per corpus and never updated; a new corpus needs a
// new Build. Every lookup on a missing key returns zero.
package freq

import (
	"math"
	"time"

	"github.com/bastiangx/wordsieve/internal/utils"
	"github.com/bastiangx/wordsieve/pkg/corpus"
	"github.com/charmbracelet/log"
)

// Commonality tiers.
const (
	PastAnswerCommonality = 1000.0
	commonCeiling         = 900.0
	commonFloor           = 400.0
	commonSpan            = 500.0
	genericCeiling        = 100.0
	genericDecay          = 8.0
)

// Vowels scored by the vowel-position weighting.
var Vowels = []byte{'a', 'e', 'i', 'o', 'u'}

// Model holds the statistics consumed by the scorer and probe selector.
type Model struct {
	letters     map[byte]int
	positions   [utils.WordLength]map[byte]int
	bigrams     map[string]int
	trigrams    map[string]int
	suffixes    map[string]struct{}
	vowels      map[byte]float64
	commonality map[string]float64
	answers     int
}

// Build computes the model from c. It is O(past answers) for the letter
// statistics plus O(words + common words) for commonality.
func Build(c *corpus.Corpus) *Model {
	start := time.Now()
	m := &Model{
		letters:     make(map[byte]int, 26),
		bigrams:     make(map[string]int),
		trigrams:    make(map[string]int),
		suffixes:    make(map[string]struct{}),
		vowels:      make(map[byte]float64, len(Vowels)),
		commonality: make(map[string]float64, c.Len()),
	}
	for i := range m.positions {
		m.positions[i] = make(map[byte]int, 26)
	}

	for _, w := range c.PastAnswers() {
		m.addAnswer(w)
	}
	m.answers = len(c.PastAnswers())

	for _, v := range Vowels {
		var weighted float64
		for pos := range m.positions {
			weighted += float64(m.positions[pos][v] * (pos + 1))
		}
		m.vowels[v] = weighted
	}

	m.buildCommonality(c)

	log.Debugf("Frequency model built from %d answers in %v (bigrams=%d trigrams=%d suffixes=%d)",
		m.answers, time.Since(start), len(m.bigrams), len(m.trigrams), len(m.suffixes))
	return m
}

func (m *Model) addAnswer(w string) {
	var seen [26]bool
	for i := 0; i < len(w); i++ {
		ch := w[i]
		m.positions[i][ch]++
		if !seen[ch-'a'] {
			seen[ch-'a'] = true
			m.letters[ch]++
		}
	}
	for i := 0; i+2 <= len(w); i++ {
		m.bigrams[w[i:i+2]]++
	}
	for i := 0; i+3 <= len(w); i++ {
		m.trigrams[w[i:i+3]]++
	}
	m.suffixes[w[len(w)-2:]] = struct{}{}
	m.suffixes[w[len(w)-3:]] = struct{}{}
}

// buildCommonality scores every word once; the first tier that claims a
// word wins: past answers, then common words by rank, then the dictionary.
func (m *Model) buildCommonality(c *corpus.Corpus) {
	for _, w := range c.PastAnswers() {
		m.commonality[w] = PastAnswerCommonality
	}

	common := c.CommonWords()
	n := float64(len(common))
	for i, w := range common {
		if _, done := m.commonality[w]; done {
			continue
		}
		m.commonality[w] = math.Max(commonFloor, commonCeiling-float64(i)*commonSpan/n)
	}

	for i, w := range c.Words() {
		if _, done := m.commonality[w]; done {
			continue
		}
		m.commonality[w] = math.Max(0, genericCeiling-genericDecay*math.Log(float64(i+1)))
	}
}

// Answers is the number of past answers the model was built from.
func (m *Model) Answers() int { return m.answers }

// LetterCount is the number of past answers containing ch at least once.
func (m *Model) LetterCount(ch byte) int { return m.letters[ch] }

// PositionCount is the number of past answers with ch at pos.
func (m *Model) PositionCount(pos int, ch byte) int {
	if pos < 0 || pos >= len(m.positions) {
		return 0
	}
	return m.positions[pos][ch]
}

// Bigram is the overlapping occurrence count of a two-letter substring.
func (m *Model) Bigram(s string) int { return m.bigrams[s] }

// Trigram is the overlapping occurrence count of a three-letter substring.
func (m *Model) Trigram(s string) int { return m.trigrams[s] }

// HasSuffix reports whether some past answer ends in s (two or three letters).
func (m *Model) HasSuffix(s string) bool {
	_, ok := m.suffixes[s]
	return ok
}

// VowelWeight is the position-weighted count for vowel ch.
func (m *Model) VowelWeight(ch byte) float64 { return m.vowels[ch] }

// Commonality returns the tiered familiarity score of w, zero if unknown.
func (m *Model) Commonality(w string) float64 { return m.commonality[w] }
