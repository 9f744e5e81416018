package domain

import "strings"

type Command string

const (
	CommandNone   Command = ""
	CommandStart  Command = "start"
	CommandHelp   Command = "help"
	CommandStatus Command = "status"
	CommandReset  Command = "reset"
	CommandChatID Command = "chatid"
)

// ParseCommand extracts a bot command from raw message text.
// Telegram commands may carry a bot suffix in groups ("/reset@relay_bot");
// the suffix is ignored, addressing is handled by the mention gate.
func ParseCommand(text string) Command {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return CommandNone
	}
	word := strings.Fields(trimmed)[0]
	word = strings.TrimPrefix(word, "/")
	if at := strings.IndexByte(word, '@'); at >= 0 {
		word = word[:at]
	}
	switch Command(strings.ToLower(word)) {
	case CommandStart, CommandHelp, CommandStatus, CommandReset, CommandChatID:
		return Command(strings.ToLower(word))
	default:
		return CommandNone
	}
}
