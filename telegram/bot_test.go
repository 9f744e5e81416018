package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripMention(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		username  string
		expected  string
		mentioned bool
	}{
		{
			name:      "leading mention",
			text:      "@relay_bot what is 2+2",
			username:  "relay_bot",
			expected:  "what is 2+2",
			mentioned: true,
		},
		{
			name:      "mention mid-sentence",
			text:      "hey @relay_bot what is 2+2",
			username:  "relay_bot",
			expected:  "hey  what is 2+2",
			mentioned: true,
		},
		{
			name:      "no mention",
			text:      "what is 2+2",
			username:  "relay_bot",
			expected:  "what is 2+2",
			mentioned: false,
		},
		{
			name:      "different bot mentioned",
			text:      "@other_bot hello",
			username:  "relay_bot",
			expected:  "@other_bot hello",
			mentioned: false,
		},
		{
			name:      "mention only",
			text:      "@relay_bot",
			username:  "relay_bot",
			expected:  "",
			mentioned: true,
		},
		{
			name:      "unknown own username",
			text:      "@relay_bot hello",
			username:  "",
			expected:  "@relay_bot hello",
			mentioned: false,
		},
		{
			name:      "surrounding whitespace is trimmed",
			text:      "  what is 2+2  ",
			username:  "relay_bot",
			expected:  "what is 2+2",
			mentioned: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			text, mentioned := stripMention(tt.text, tt.username)
			req.Equal(tt.expected, text)
			req.Equal(tt.mentioned, mentioned)
		})
	}
}
