// Package probe picks throwaway guesses that split the remaining candidates.
//
// A probe is never a candidate itself. It is scored by how evenly its
// letters divide the candidate set, so letters already known (green or
// gray) disqualify a word outright.
package probe

import (
	"github.com/bastiangx/wordsieve/internal/utils"
	"github.com/bastiangx/wordsieve/pkg/constraint"
	"github.com/bastiangx/wordsieve/pkg/corpus"
	"github.com/bastiangx/wordsieve/pkg/freq"
	"github.com/bastiangx/wordsieve/pkg/score"
	"github.com/bits-and-blooms/bitset"
	"github.com/charmbracelet/log"
)

// frequentLetters earn a flat bonus per distinct occurrence in a probe.
var frequentLetters = constraint.LettersOf("eaortlisnc")

// coverage counts how the candidate set splits on each letter.
type coverage struct {
	letters   [26]int
	positions [utils.WordLength][26]int
	total     int
}

func newCoverage(candidates []string, green constraint.LetterSet) *coverage {
	cov := &coverage{total: len(candidates)}
	for _, w := range candidates {
		var seen constraint.LetterSet
		for pos := 0; pos < len(w); pos++ {
			ch := w[pos]
			if green.Has(ch) {
				continue
			}
			cov.positions[pos][ch-'a']++
			if !seen.Has(ch) {
				seen = seen.Add(ch)
				cov.letters[ch-'a']++
			}
		}
	}
	return cov
}

// letterValue rewards letters present in close to half the candidates.
func (cov *coverage) letterValue(ch byte) float64 {
	n := cov.letters[ch-'a']
	ratio := float64(n) / float64(cov.total)
	switch {
	case ratio >= 0.4 && ratio <= 0.6:
		return float64(n) * 15
	case (ratio >= 0.3 && ratio < 0.4) || (ratio > 0.6 && ratio <= 0.75):
		return float64(n) * 12
	case ratio > 0.15:
		return float64(n) * 5
	}
	return 0
}

// score rates word as a probe against the coverage of the candidate set.
// known holds green and gray letters; any overlap scores zero.
func (cov *coverage) score(word string, known constraint.LetterSet, commonality float64) float64 {
	if known.ContainsAny(word) {
		return 0
	}

	var total float64
	var seen constraint.LetterSet
	unique, vowels := 0, 0
	for pos := 0; pos < len(word); pos++ {
		ch := word[pos]
		if !seen.Has(ch) {
			seen = seen.Add(ch)
			unique++
			total += cov.letterValue(ch)
		}
		total += float64(cov.positions[pos][ch-'a']) * 2
		if utils.IsVowel(ch) {
			vowels++
		}
	}

	switch unique {
	case 5:
		total *= 3.0
	case 4:
		total *= 1.8
	default:
		total *= 0.3
	}
	if vowels == 2 || vowels == 3 {
		total *= 1.3
	}

	total += float64((seen & frequentLetters).Len()) * 20

	switch {
	case commonality > 300:
		total *= 1.2
	case commonality < 20:
		total *= 0.5
	}
	return total
}

// Select returns up to count dictionary words outside candidates that best
// discriminate among them. Words containing a green letter from correct or
// any excluded letter are never returned. Confidence is not applicable.
func Select(c *corpus.Corpus, m *freq.Model, candidates []string, correct constraint.Pattern, excluded constraint.LetterSet, count int) []score.Suggestion {
	if len(candidates) == 0 || count <= 0 {
		return []score.Suggestion{}
	}

	green := correct.Letters()
	known := green.Union(excluded)
	cov := newCoverage(candidates, green)

	inCandidates := bitset.New(uint(c.Len()))
	for _, w := range candidates {
		if i, ok := c.Index(w); ok {
			inCandidates.Set(uint(i))
		}
	}

	var probes []score.Suggestion
	for i, w := range c.Words() {
		if inCandidates.Test(uint(i)) || known.ContainsAny(w) {
			continue
		}
		probes = append(probes, score.Suggestion{
			Word:       w,
			Score:      cov.score(w, known, m.Commonality(w)),
			Confidence: score.ConfidenceNotApplicable,
		})
	}

	score.SortByScore(probes)
	if len(probes) > count {
		probes = probes[:count]
	}
	for i := range probes {
		probes[i].Rank = i + 1
	}

	log.Debugf("Probe selection: %d candidates, known=%s, returned %d", len(candidates), known, len(probes))
	return probes
}
