package moderation

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// The dictionary uses specific words to avoid partial collisions (e.g., "he" inside "The")
func TestFilter_Inspect(t *testing.T) {
	req := require.New(t)
	filter, err := NewFilter([]string{"badger", "snake", "mushroom"}, slog.Default())
	req.NoError(err)

	tests := []struct {
		name  string
		input string
		words []string
	}{
		{
			name:  "plain word",
			input: "The badger is here",
			words: []string{"badger"},
		},
		{
			name:  "leet speak and internal punctuation",
			input: "Look at B.4.d.g.€r !",
			words: []string{"badger"},
		},
		{
			name:  "uppercase and extreme noise",
			input: "S-N-A-K-E is a B.A.D.G.E.R",
			words: []string{"snake", "badger"},
		},
		{
			name:  "nothing to flag",
			input: "This relay is amazing",
			words: nil,
		},
		{
			name:  "empty string",
			input: "",
			words: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := filter.Inspect(tt.input)
			require.Equal(t, tt.words, verdict.Words)
			require.Equal(t, len(tt.words) > 0, verdict.Flagged)
		})
	}
}

func TestFilter_EmptyListPassesEverything(t *testing.T) {
	req := require.New(t)
	filter, err := NewFilter(nil, slog.Default())
	req.NoError(err)

	verdict := filter.Inspect("badger snake mushroom")
	req.False(verdict.Flagged)
	req.Nil(verdict.Words)
}

func TestFilter_NoiseOnlyPatternsAreDropped(t *testing.T) {
	req := require.New(t)

	// Pure-noise entries must not break the automaton
	filter, err := NewFilter([]string{"...", ",,,", "", "badger"}, slog.Default())
	req.NoError(err)

	req.True(filter.Inspect("The badger is safe").Flagged)
	req.False(filter.Inspect("Hello ...").Flagged)
}

func TestFilter_DetectsLanguage(t *testing.T) {
	req := require.New(t)
	filter, err := NewFilter(nil, slog.Default())
	req.NoError(err)

	verdict := filter.Inspect("The quick brown fox jumps over the lazy dog near the river bank")
	req.Equal("en", verdict.Language)
}
