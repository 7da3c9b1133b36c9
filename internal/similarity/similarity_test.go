package similarity_test

import (
	"testing"

	"github.com/KirkDiggler/bloodbond/internal/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "collapses whitespace and punctuation", input: "  Fire!!   Storm ", want: "fire storm"},
		{name: "strips accents", input: "Café", want: "cafe"},
		{name: "keeps underscores and digits", input: "5_Minute", want: "5_minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, similarity.Normalize(tt.input))
		})
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, similarity.Ratio("", ""))
	assert.Equal(t, 0.0, similarity.Ratio("fire", ""))
	assert.Equal(t, 1.0, similarity.Ratio("FIRE", "fire"))
	assert.InDelta(t, 0.8, similarity.Ratio("Firey", "Fire"), 1e-9)
	assert.Less(t, similarity.Ratio("moon", "earth"), 0.4)
}

func TestBestMatch(t *testing.T) {
	match, ok := similarity.BestMatch("Firey", []string{"Fire", "Water", "Earth"}, 0.7)
	require.True(t, ok)
	assert.Equal(t, "Fire", match.Value)
	assert.InDelta(t, 0.8, match.Score, 1e-9)

	_, ok = similarity.BestMatch("xyz", []string{"Fire", "Water"}, 0.7)
	assert.False(t, ok)

	_, ok = similarity.BestMatch("fire", nil, 0.7)
	assert.False(t, ok)
}

func TestSuggest(t *testing.T) {
	elements := []string{"moon", "wind", "water", "fire", "earth", "death", "protection", "love", "song", "sun"}

	tests := []struct {
		name       string
		query      string
		candidates []string
		limit      int
		want       []string
	}{
		{name: "typo", query: "fier", candidates: elements, limit: 3, want: []string{"fire"}},
		{name: "prefix", query: "fi", candidates: elements, limit: 3, want: []string{"fire"}},
		{name: "limit applies", query: "a", candidates: []string{"apple", "avocado", "banana", "grape"}, limit: 2, want: []string{"apple", "avocado"}},
		{name: "nothing close", query: "zzzz", candidates: elements, limit: 3, want: []string{}},
		{name: "empty query", query: "", candidates: elements, limit: 3, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := similarity.Suggest(tt.query, tt.candidates, tt.limit)
			assert.Equal(t, tt.want, got)
		})
	}
}
