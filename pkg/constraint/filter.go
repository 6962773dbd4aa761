package constraint

import (
	"github.com/bastiangx/wordsieve/pkg/corpus"
	"github.com/charmbracelet/log"
)

// Query is everything known about the hidden word.
type Query struct {
	Correct            Pattern
	Misplaced          []Misplaced
	Excluded           LetterSet
	ExcludePastAnswers bool
}

// ParseQuery builds a Query from the text forms used by the CLI and IPC layers.
func ParseQuery(correct, misplaced, excluded string, excludePast bool) Query {
	return Query{
		Correct:            ParsePattern(correct),
		Misplaced:          ParseMisplaced(misplaced),
		Excluded:           ParseLetters(excluded),
		ExcludePastAnswers: excludePast,
	}
}

// Known is the set of green letters plus gray letters.
func (q Query) Known() LetterSet {
	return q.Correct.Letters().Union(q.Excluded)
}

// Filter returns the dictionary words consistent with q, in corpus order.
//
// Stages run in sequence over the survivors of the previous one: pinned
// positions, misplaced letters, excluded letters, then past answers.
// The leading run of pinned letters is resolved through the corpus prefix
// index before the per-word checks. Contradictory constraints simply leave
// nothing behind.
func Filter(c *corpus.Corpus, q Query) []string {
	words := c.Words()
	idx := c.WithPrefix(q.Correct.Prefix())

	remaining := make([]string, 0, len(idx))
	for _, i := range idx {
		if q.Correct.Matches(words[i]) {
			remaining = append(remaining, words[i])
		}
	}

	for _, m := range q.Misplaced {
		if !m.Valid() {
			log.Debugf("Ignoring invalid misplaced constraint %v", m)
			continue
		}
		remaining = keep(remaining, m.Matches)
	}

	if q.Excluded != 0 {
		remaining = keep(remaining, func(w string) bool { return !q.Excluded.ContainsAny(w) })
	}

	if q.ExcludePastAnswers {
		remaining = keep(remaining, func(w string) bool { return !c.IsPastAnswer(w) })
	}

	log.Debugf("Filter %s %v -%s past=%t: %d of %d words",
		q.Correct, q.Misplaced, q.Excluded, q.ExcludePastAnswers, len(remaining), len(words))
	return remaining
}

// keep filters in place, preserving order.
func keep(words []string, pred func(string) bool) []string {
	out := words[:0]
	for _, w := range words {
		if pred(w) {
			out = append(out, w)
		}
	}
	return out
}
