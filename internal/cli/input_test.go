package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordsieve/pkg/config"
	"github.com/bastiangx/wordsieve/pkg/constraint"
	"github.com/bastiangx/wordsieve/pkg/corpus"
	"github.com/bastiangx/wordsieve/pkg/engine"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func testHandler(t *testing.T, input string) (*InputHandler, *bytes.Buffer) {
	t.Helper()
	c, err := corpus.New(
		[]string{"arose", "bears", "crane", "manor", "mount", "party", "slate", "tarot", "thump"},
		[]string{"slate"},
		[]string{"crane", "tarot"},
	)
	require.NoError(t, err)
	e := engine.New()
	require.NoError(t, e.Load(c))

	var out bytes.Buffer
	h := NewInputHandler(e, config.DefaultConfig().CLI)
	h.in = strings.NewReader(input)
	h.out = &out
	return h, &out
}

func TestParseLine(t *testing.T) {
	h, _ := testHandler(t, "")
	defaults := config.DefaultConfig().CLI

	testCases := []struct {
		line        string
		name        string
		query       constraint.Query
		count       int
		description string
	}{
		{"g=_a___", "rank", constraint.ParseQuery("_a___", "", "", false), defaults.DefaultLimit, "bare constraints rank"},
		{"rank g=_a___ y=r:1,t:3 x=x,y,z past n=3", "rank", constraint.ParseQuery("_a___", "r:1,t:3", "x,y,z", true), 3, "full rank line"},
		{"probe x=e", "probe", constraint.ParseQuery("", "", "e", false), defaults.ProbeLimit, "probe default count"},
		{"best 4", "best", constraint.Query{}, 4, "best with count"},
		{"daily 2", "daily", constraint.Query{}, 2, "daily offset"},
		{"DAILY", "daily", constraint.Query{}, 0, "verbs are case-insensitive"},
		{"rank bogus n=abc", "rank", constraint.Query{}, defaults.DefaultLimit, "bad tokens are skipped"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			cmd := h.parseLine(tc.line)
			assert.Equal(t, tc.name, cmd.name)
			assert.Equal(t, tc.count, cmd.count)
			assert.Equal(t, tc.query.Correct, cmd.query.Correct)
			assert.Equal(t, tc.query.Excluded, cmd.query.Excluded)
			assert.Equal(t, tc.query.ExcludePastAnswers, cmd.query.ExcludePastAnswers)
			assert.Len(t, cmd.query.Misplaced, len(tc.query.Misplaced))
		})
	}
}

func TestSession(t *testing.T) {
	h, out := testHandler(t, "g=_a___\nrank g=_a___ past\n\nbest 2\nprobe g=_a___ n=2\ng=zzzzz\ndaily\nstats\n")
	require.NoError(t, h.Start())

	text := out.String()
	assert.Contains(t, text, "3 candidates")
	assert.Contains(t, text, "2 candidates")
	assert.Contains(t, text, "manor")
	assert.Contains(t, text, "best starting words")
	assert.Contains(t, text, "probes for 3 candidates")
	assert.Contains(t, text, "no word fits these constraints")
	assert.Contains(t, text, "today:")
	assert.Contains(t, text, "totalWords")
	assert.Equal(t, 7, h.requestCount, "blank lines are not requests")
}

func TestNotReady(t *testing.T) {
	var out bytes.Buffer
	h := NewInputHandler(engine.New(), config.DefaultConfig().CLI)
	h.in = strings.NewReader("g=_a___\n")
	h.out = &out

	require.NoError(t, h.Start())
	assert.NotContains(t, out.String(), "candidates")
}
