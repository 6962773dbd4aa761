package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWord(t *testing.T) {
	testCases := []struct {
		input       string
		expected    string
		ok          bool
		description string
	}{
		{"crane", "crane", true, "already clean"},
		{"  CRANE\r", "crane", true, "trims and lowercases"},
		{"cran", "cran", false, "too short"},
		{"cranes", "cranes", false, "too long"},
		{"cr4ne", "cr4ne", false, "digit"},
		{"", "", false, "blank line"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, ok := NormalizeWord(tc.input)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestSeenFilter(t *testing.T) {
	f := NewSeenFilter(4)
	assert.True(t, f.ShouldInclude("slate"))
	assert.True(t, f.ShouldInclude("crane"))
	assert.False(t, f.ShouldInclude("slate"))
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "14,855", FormatWithCommas(14855))
	assert.Equal(t, "1,000,000", FormatWithCommas(1000000))
	assert.Equal(t, "-2,500", FormatWithCommas(-2500))
}
