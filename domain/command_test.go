package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Command
	}{
		{name: "start", text: "/start", expected: CommandStart},
		{name: "help", text: "/help", expected: CommandHelp},
		{name: "status", text: "/status", expected: CommandStatus},
		{name: "reset", text: "/reset", expected: CommandReset},
		{name: "chatid", text: "/chatid", expected: CommandChatID},
		{name: "bot suffix is ignored", text: "/reset@relay_bot", expected: CommandReset},
		{name: "mixed case", text: "/Reset", expected: CommandReset},
		{name: "leading whitespace", text: "  /help", expected: CommandHelp},
		{name: "trailing words", text: "/reset please", expected: CommandReset},
		{name: "plain text", text: "what is 2+2", expected: CommandNone},
		{name: "unknown command", text: "/dance", expected: CommandNone},
		{name: "slash mid-sentence", text: "either/or", expected: CommandNone},
		{name: "empty", text: "", expected: CommandNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ParseCommand(tt.text))
		})
	}
}
