package freq

import (
	"math"
	"testing"

	"github.com/bastiangx/wordsieve/pkg/corpus"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func build(t *testing.T, all, common, past []string) *Model {
	t.Helper()
	c, err := corpus.New(all, common, past)
	require.NoError(t, err)
	return Build(c)
}

func TestLetterStatistics(t *testing.T) {
	m := build(t, []string{"eerie", "crane"}, nil, []string{"eerie", "crane"})

	assert.Equal(t, 2, m.Answers())
	assert.Equal(t, 2, m.LetterCount('e'), "counted once per word")
	assert.Equal(t, 2, m.LetterCount('r'))
	assert.Equal(t, 1, m.LetterCount('c'))
	assert.Equal(t, 0, m.LetterCount('z'))

	assert.Equal(t, 1, m.PositionCount(0, 'e'))
	assert.Equal(t, 2, m.PositionCount(4, 'e'))
	assert.Equal(t, 0, m.PositionCount(7, 'e'), "out of range position reads zero")

	assert.Equal(t, 1, m.Bigram("ee"))
	assert.Equal(t, 1, m.Bigram("cr"))
	assert.Equal(t, 0, m.Bigram("zz"))
	assert.Equal(t, 1, m.Trigram("eri"))
	assert.Equal(t, 1, m.Trigram("ane"))

	for _, s := range []string{"ie", "rie", "ne", "ane"} {
		assert.True(t, m.HasSuffix(s), s)
	}
	assert.False(t, m.HasSuffix("er"))
}

func TestVowelWeights(t *testing.T) {
	// crane: a@2 e@4; eerie: e@0 e@1 i@3 e@4
	m := build(t, []string{"eerie", "crane"}, nil, []string{"eerie", "crane"})

	assert.InDelta(t, 3.0, m.VowelWeight('a'), 1e-9)
	assert.InDelta(t, 1+2+5+5, m.VowelWeight('e'), 1e-9)
	assert.InDelta(t, 4.0, m.VowelWeight('i'), 1e-9)
	assert.Zero(t, m.VowelWeight('o'))
	assert.Zero(t, m.VowelWeight('r'), "consonants have no vowel weight")
}

func TestCommonalityTiers(t *testing.T) {
	all := []string{"arose", "crane", "slate", "zymic", "tarot"}
	common := []string{"slate", "crane", "tarot", "xylem"}
	past := []string{"crane"}
	m := build(t, all, common, past)

	assert.Equal(t, PastAnswerCommonality, m.Commonality("crane"), "past answer wins over common rank")
	assert.InDelta(t, 900.0, m.Commonality("slate"), 1e-9)
	assert.InDelta(t, 900.0-2*500.0/4, m.Commonality("tarot"), 1e-9)
	assert.InDelta(t, 900.0-3*500.0/4, m.Commonality("xylem"), 1e-9, "common words need not be in the dictionary")

	// sorted dictionary: arose(0) crane(1) slate(2) tarot(3) zymic(4)
	assert.InDelta(t, 100.0, m.Commonality("arose"), 1e-9)
	assert.InDelta(t, 100-8*math.Log(5), m.Commonality("zymic"), 1e-9)

	assert.Zero(t, m.Commonality("qajaq"))
}

func TestCommonalityFloors(t *testing.T) {
	common := make([]string, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		common = append(common, string(c)+"aaaa")
	}
	m := build(t, nil, common, nil)
	for _, w := range common {
		assert.GreaterOrEqual(t, m.Commonality(w), 400.0, w)
	}

	// generic tier decays logarithmically down the dictionary
	var all []string
	for a := 'a'; a <= 'z'; a++ {
		for b := 'a'; b <= 'z'; b++ {
			for c := 'a'; c <= 'f'; c++ {
				all = append(all, string([]rune{a, b, c, 'x', 'x'}))
			}
		}
	}
	m = build(t, all, nil, nil)
	assert.InDelta(t, 100-8*math.Log(float64(len(all))), m.Commonality("zzfxx"), 1e-9)
	assert.Less(t, m.Commonality("zzfxx"), 50.0)
	assert.InDelta(t, 100.0, m.Commonality("aaaxx"), 1e-9)
}

func TestTierOrdering(t *testing.T) {
	all := []string{"aback", "crane", "slate"}
	m := build(t, all, []string{"slate"}, []string{"crane"})
	assert.Greater(t, m.Commonality("crane"), m.Commonality("slate"))
	assert.Greater(t, m.Commonality("slate"), m.Commonality("aback"))
}

func TestEmptyModel(t *testing.T) {
	m := build(t, nil, nil, nil)
	assert.Zero(t, m.Answers())
	assert.Zero(t, m.LetterCount('e'))
	assert.Zero(t, m.VowelWeight('e'))
	assert.False(t, m.HasSuffix("ne"))
}
