// Package engine is the query facade over a loaded word corpus: filtering,
// ranking, probe selection and the daily pick behind one readiness gate.
package engine

import (
	"github.com/bastiangx/wordsieve/pkg/constraint"
	"github.com/bastiangx/wordsieve/pkg/corpus"
	"github.com/bastiangx/wordsieve/pkg/score"
)

// ISolver defines the operations served to the IPC server and the CLI.
type ISolver interface {
	// Load builds every derived structure from c and makes the solver ready
	Load(c *corpus.Corpus) error

	// Ready reports whether Load has completed
	Ready() bool

	// Candidates returns the words consistent with q
	Candidates(q constraint.Query) ([]string, error)

	// RankCandidates filters with q then ranks the survivors
	RankCandidates(q constraint.Query) ([]score.Suggestion, error)

	// BestStartingWords returns the top count never-answered words
	BestStartingWords(count int) ([]string, error)

	// StrategicProbes picks non-candidate words that split candidates
	StrategicProbes(candidates []string, correct constraint.Pattern, excluded constraint.LetterSet, count int) ([]score.Suggestion, error)

	// DailyPick returns the word of the day, shifted by offset
	DailyPick(offset int) (string, error)

	// Stats returns statistics about the loaded corpus
	Stats() map[string]int
}
