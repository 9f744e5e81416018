package ai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncateResponse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxLen   int
		expected string
	}{
		{
			name:     "below the limit is untouched",
			text:     "short",
			maxLen:   10,
			expected: "short",
		},
		{
			name:     "exactly at the limit is untouched",
			text:     "exactly10!",
			maxLen:   10,
			expected: "exactly10!",
		},
		{
			name:     "one over the limit is cut",
			text:     "exactly10!x",
			maxLen:   10,
			expected: "exactly10!" + truncationSuffix,
		},
		{
			name:     "zero limit disables capping",
			text:     "anything goes",
			maxLen:   0,
			expected: "anything goes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, TruncateResponse(tt.text, tt.maxLen))
		})
	}
}

// The cut counts characters, not bytes: a multi-byte rune one past the
// limit must disappear whole, never leave a broken sequence behind.
func TestTruncateResponse_MultibyteBoundary(t *testing.T) {
	req := require.New(t)

	text := strings.Repeat("é", 10)
	req.Equal(text, TruncateResponse(text, 10))

	over := text + "漢"
	truncated := TruncateResponse(over, 10)
	req.Equal(text+truncationSuffix, truncated)
	req.True(utf8.ValidString(truncated))
}
