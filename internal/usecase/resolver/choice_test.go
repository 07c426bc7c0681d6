package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		option string
		target string
		mode   MatchMode
		want   bool
	}{
		{"word: verbose option", "Yes, I am", "Yes", MatchWord, true},
		{"word: verbose target", "Yes", "Yes, I am authorized", MatchWord, true},
		{"word: case folded", "YES", "yes", MatchWord, true},
		{"word: no inside nowhere", "Nowhere", "No", MatchWord, false},
		{"word: unrelated", "No", "Yes", MatchWord, false},
		{"word: empty option", "", "Yes", MatchWord, false},
		{"word: multi-word run", "Bachelor's Degree", "bachelor s degree", MatchWord, true},
		{"exact: equal", " Yes ", "yes", MatchExact, true},
		{"exact: verbose", "Yes, I am", "Yes", MatchExact, false},
		{"substring: legacy nowhere", "Nowhere", "No", MatchSubstring, true},
		{"substring: verbose option", "Yes, I am", "Yes", MatchSubstring, true},
		{"substring: empty option", "  ", "Yes", MatchSubstring, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.option, tt.target, tt.mode))
		})
	}
}

func TestParseMatchMode(t *testing.T) {
	m, err := ParseMatchMode("")
	assert.NoError(t, err)
	assert.Equal(t, MatchWord, m)

	m, err = ParseMatchMode(" Substring ")
	assert.NoError(t, err)
	assert.Equal(t, MatchSubstring, m)

	_, err = ParseMatchMode("fuzzy")
	assert.Error(t, err)
}

func TestSynonyms(t *testing.T) {
	assert.Equal(t, []string{"Yes", "True"}, Synonyms("yes"))
	assert.Equal(t, []string{"No", "False"}, Synonyms("False"))
	assert.Equal(t, []string{"Bachelor's Degree"}, Synonyms("Bachelor's Degree"))
}
