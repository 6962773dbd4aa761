package utils

import (
	"fmt"
	"strings"
)

// WordLength is the fixed length of every puzzle word.
const WordLength = 5

// IsLowerLetter reports whether b is an ASCII letter in a..z.
func IsLowerLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// IsWord checks that s is exactly five lowercase ASCII letters.
func IsWord(s string) bool {
	if len(s) != WordLength {
		return false
	}
	for i := 0; i < WordLength; i++ {
		if !IsLowerLetter(s[i]) {
			return false
		}
	}
	return true
}

// NormalizeWord trims and lowercases a raw list entry.
// ok is false when the result is not a valid puzzle word.
func NormalizeWord(raw string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(raw))
	return w, IsWord(w)
}

// IsVowel reports whether b is one of a, e, i, o, u.
func IsVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// SeenFilter drops repeated words while keeping first-seen order.
type SeenFilter struct {
	seen map[string]struct{}
}

// NewSeenFilter creates an empty filter sized for n words
func NewSeenFilter(n int) *SeenFilter {
	return &SeenFilter{seen: make(map[string]struct{}, n)}
}

// ShouldInclude returns true the first time a word is offered, false after that.
func (f *SeenFilter) ShouldInclude(word string) bool {
	if _, dup := f.seen[word]; dup {
		return false
	}
	f.seen[word] = struct{}{}
	return true
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	str := fmt.Sprintf("%d", n)
	if n < 1000 && n > -1000 {
		return str
	}
	sign := ""
	if str[0] == '-' {
		sign, str = "-", str[1:]
	}
	var b strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return sign + b.String()
}
