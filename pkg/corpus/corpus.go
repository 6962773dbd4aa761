// Package corpus holds the three word collections the engine works from:
// the full dictionary, the rank-ordered common subset and the past answers.
package corpus

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bastiangx/wordsieve/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrInvalidWord is returned by New when a list entry is not five lowercase letters.
var ErrInvalidWord = errors.New("invalid word")

// Corpus is immutable once built. Slices returned by its accessors are
// shared and must not be modified by callers.
type Corpus struct {
	words      []string
	index      map[string]int
	past       []string
	pastSet    map[string]struct{}
	common     []string
	commonRank map[string]int
	trie       *patricia.Trie
}

// New builds a Corpus from already cleaned lists.
// all and past are sorted for deterministic iteration; common keeps its
// order because list position is its frequency rank. Duplicates are dropped.
func New(all, common, past []string) (*Corpus, error) {
	lists := []struct {
		name  string
		words []string
	}{{"words", all}, {"common", common}, {"past", past}}
	for _, l := range lists {
		for i, w := range l.words {
			if !utils.IsWord(w) {
				return nil, fmt.Errorf("%s list entry %d (%q): %w", l.name, i, w, ErrInvalidWord)
			}
		}
	}

	c := &Corpus{
		words:      dedupe(all),
		past:       dedupe(past),
		common:     dedupe(common),
		trie:       patricia.NewTrie(),
		pastSet:    make(map[string]struct{}, len(past)),
		commonRank: make(map[string]int, len(common)),
	}
	sort.Strings(c.words)
	sort.Strings(c.past)

	c.index = make(map[string]int, len(c.words))
	for i, w := range c.words {
		c.index[w] = i
		c.trie.Insert(patricia.Prefix(w), i)
	}
	for _, w := range c.past {
		c.pastSet[w] = struct{}{}
	}
	for i, w := range c.common {
		c.commonRank[w] = i
	}

	log.Debugf("Corpus built: words=%d common=%d past=%d", len(c.words), len(c.common), len(c.past))
	return c, nil
}

func dedupe(list []string) []string {
	filter := utils.NewSeenFilter(len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		if filter.ShouldInclude(w) {
			out = append(out, w)
		}
	}
	return out
}

// Words returns the full dictionary in sorted order.
func (c *Corpus) Words() []string { return c.words }

// PastAnswers returns past answers in sorted order.
func (c *Corpus) PastAnswers() []string { return c.past }

// CommonWords returns the common list in rank order (index 0 is most common).
func (c *Corpus) CommonWords() []string { return c.common }

// Len is the size of the full dictionary.
func (c *Corpus) Len() int { return len(c.words) }

// Contains reports whether w is in the full dictionary.
func (c *Corpus) Contains(w string) bool {
	_, ok := c.index[w]
	return ok
}

// Index returns the position of w in Words.
func (c *Corpus) Index(w string) (int, bool) {
	i, ok := c.index[w]
	return i, ok
}

// IsPastAnswer reports whether w was used as a puzzle answer.
func (c *Corpus) IsPastAnswer(w string) bool {
	_, ok := c.pastSet[w]
	return ok
}

// CommonRank returns the list index of w among common words.
func (c *Corpus) CommonRank(w string) (int, bool) {
	i, ok := c.commonRank[w]
	return i, ok
}

// WithPrefix returns the dictionary indexes of every word starting with
// prefix, ascending. An empty prefix yields every index.
func (c *Corpus) WithPrefix(prefix string) []int {
	if prefix == "" {
		all := make([]int, len(c.words))
		for i := range all {
			all[i] = i
		}
		return all
	}
	var out []int
	err := c.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		idx, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, p)
			return nil
		}
		out = append(out, idx)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}
	sort.Ints(out)
	return out
}
