// Package constraint parses green/yellow/gray feedback into structured
// constraints and filters the dictionary down to consistent candidates.
//
// The text forms ("_a_e_", "r:1, t:3", "x,y,z") are parsed once at the
// boundary; Filter only ever sees the structured types.
package constraint

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/bastiangx/wordsieve/internal/utils"
	"github.com/charmbracelet/log"
)

// Pattern pins letters to positions. A zero byte leaves the slot open.
type Pattern [utils.WordLength]byte

// ParsePattern reads a pattern such as "_a_e_". Letters pin their slot
// (case-insensitive), anything else is a placeholder. Input shorter than
// five leaves the trailing slots open; extra runes are ignored.
func ParsePattern(s string) Pattern {
	var p Pattern
	i := 0
	for _, r := range s {
		if i == utils.WordLength {
			break
		}
		if r < unicode.MaxASCII {
			if b := byte(unicode.ToLower(r)); utils.IsLowerLetter(b) {
				p[i] = b
			}
		}
		i++
	}
	return p
}

// String renders open slots as '_'.
func (p Pattern) String() string {
	var b strings.Builder
	for _, c := range p {
		if c == 0 {
			b.WriteByte('_')
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// IsEmpty reports whether no slot is pinned.
func (p Pattern) IsEmpty() bool {
	return p == Pattern{}
}

// Letters is the set of pinned (green) letters.
func (p Pattern) Letters() LetterSet {
	var s LetterSet
	for _, c := range p {
		if c != 0 {
			s = s.Add(c)
		}
	}
	return s
}

// Prefix returns the leading run of pinned letters ("cr" for "cr_n_").
func (p Pattern) Prefix() string {
	n := 0
	for n < len(p) && p[n] != 0 {
		n++
	}
	return string(p[:n])
}

// Matches reports whether every pinned slot agrees with word.
func (p Pattern) Matches(word string) bool {
	for i, c := range p {
		if c != 0 && word[i] != c {
			return false
		}
	}
	return true
}

// Misplaced is a yellow letter: present in the word, but not at Position.
type Misplaced struct {
	Letter   byte
	Position int // 1-based
}

// Valid reports whether the pair is usable; invalid pairs are no-ops.
func (m Misplaced) Valid() bool {
	return utils.IsLowerLetter(m.Letter) && m.Position >= 1 && m.Position <= utils.WordLength
}

// Matches reports whether word contains Letter somewhere other than Position.
func (m Misplaced) Matches(word string) bool {
	return word[m.Position-1] != m.Letter && strings.IndexByte(word, m.Letter) >= 0
}

func (m Misplaced) String() string {
	return string(m.Letter) + ":" + strconv.Itoa(m.Position)
}

// ParseMisplaced reads "r:1, t:3". Spaces around a colon are allowed, so
// "r: 1" and "r :1" are single pairs. Pairs without a colon, with a letter
// part longer than one rune, or with a position outside 1..5 are skipped.
func ParseMisplaced(s string) []Misplaced {
	var out []Misplaced
	for _, tok := range splitTokens(joinColons(s)) {
		letter, pos, found := strings.Cut(tok, ":")
		if !found {
			log.Debugf("Skipping misplaced token %q: missing colon", tok)
			continue
		}
		letter = strings.ToLower(strings.TrimSpace(letter))
		n, err := strconv.Atoi(strings.TrimSpace(pos))
		if err != nil || len(letter) != 1 {
			log.Debugf("Skipping malformed misplaced token %q", tok)
			continue
		}
		m := Misplaced{Letter: letter[0], Position: n}
		if !m.Valid() {
			log.Debugf("Skipping out-of-range misplaced token %q", tok)
			continue
		}
		out = append(out, m)
	}
	return out
}

// LetterSet is a set of a..z packed into a bitmask.
type LetterSet uint32

// Add returns the set with b included. Non-letters are ignored.
func (s LetterSet) Add(b byte) LetterSet {
	if !utils.IsLowerLetter(b) {
		return s
	}
	return s | 1<<(b-'a')
}

// Has reports whether b is in the set.
func (s LetterSet) Has(b byte) bool {
	return utils.IsLowerLetter(b) && s&(1<<(b-'a')) != 0
}

// Union returns the letters in either set.
func (s LetterSet) Union(o LetterSet) LetterSet { return s | o }

// Len is the number of letters in the set.
func (s LetterSet) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// ContainsAny reports whether any byte of word is in the set.
func (s LetterSet) ContainsAny(word string) bool {
	for i := 0; i < len(word); i++ {
		if s.Has(word[i]) {
			return true
		}
	}
	return false
}

// String lists the letters alphabetically.
func (s LetterSet) String() string {
	var b strings.Builder
	for c := byte('a'); c <= 'z'; c++ {
		if s.Has(c) {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// LettersOf builds a set from every letter of s.
func LettersOf(s string) LetterSet {
	var set LetterSet
	for i := 0; i < len(s); i++ {
		set = set.Add(s[i])
	}
	return set
}

// ParseLetters reads "x, y, z". Tokens that are not a single letter are skipped.
func ParseLetters(s string) LetterSet {
	var set LetterSet
	for _, tok := range splitTokens(s) {
		tok = strings.ToLower(tok)
		if len(tok) != 1 || !utils.IsLowerLetter(tok[0]) {
			log.Debugf("Skipping excluded-letter token %q", tok)
			continue
		}
		set = set.Add(tok[0])
	}
	return set
}

// joinColons drops whitespace on either side of each colon.
func joinColons(s string) string {
	parts := strings.Split(s, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ":")
}

func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
