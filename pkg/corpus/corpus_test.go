package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestNewSortsAndDedupes(t *testing.T) {
	c, err := New(
		[]string{"slate", "crane", "arose", "crane"},
		[]string{"slate", "arose", "slate"},
		[]string{"crane", "arose"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"arose", "crane", "slate"}, c.Words())
	assert.Equal(t, []string{"arose", "crane"}, c.PastAnswers())
	assert.Equal(t, []string{"slate", "arose"}, c.CommonWords(), "common order is rank order")

	assert.True(t, c.Contains("slate"))
	assert.False(t, c.Contains("zymic"))
	assert.True(t, c.IsPastAnswer("crane"))
	assert.False(t, c.IsPastAnswer("slate"))

	rank, ok := c.CommonRank("arose")
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	idx, ok := c.Index("slate")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestNewRejectsInvalidWords(t *testing.T) {
	testCases := []struct {
		all, common, past []string
		description       string
	}{
		{[]string{"cranes"}, nil, nil, "six letters"},
		{[]string{"crane"}, []string{"Slate"}, nil, "uppercase in common list"},
		{[]string{"crane"}, nil, []string{"cr4ne"}, "digit in past list"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := New(tc.all, tc.common, tc.past)
			assert.ErrorIs(t, err, ErrInvalidWord)
		})
	}
}

func TestEmptyCorpus(t *testing.T) {
	c, err := New(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.WithPrefix("a"))
}

func TestWithPrefix(t *testing.T) {
	c, err := New([]string{"crane", "crate", "slate", "cramp", "brine"}, nil, nil)
	require.NoError(t, err)

	got := c.WithPrefix("cra")
	words := make([]string, 0, len(got))
	for _, i := range got {
		words = append(words, c.Words()[i])
	}
	assert.Equal(t, []string{"cramp", "crane", "crate"}, words)
	assert.Len(t, c.WithPrefix(""), 5)
	assert.Empty(t, c.WithPrefix("zz"))
}

func TestReadList(t *testing.T) {
	input := "Crane\n\nslate\n  AROSE  \ntoolong\ncrane\nab1de\n"
	words, err := ReadList(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate", "arose"}, words)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("words.txt", "crane\nslate\narose\nzymic\n")
	write("common-words.txt", "slate\n")

	c, err := LoadDir(dir, DefaultFiles, WithProgress(&strings.Builder{}))
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []string{"slate"}, c.CommonWords())
	assert.Empty(t, c.PastAnswers(), "missing past list degrades to empty")
}

func TestLoadDirMissingWords(t *testing.T) {
	_, err := LoadDir(t.TempDir(), DefaultFiles)
	assert.ErrorIs(t, err, ErrMissingWordList)
}
