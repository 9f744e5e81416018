package ai

import "chat-relay/conversation"

// Rough chars-per-token ratio used to keep the prompt inside the
// provider's budget without shipping a tokenizer.
const charsPerToken = 4

func estimateTokens(text string) int {
	return len(text)/charsPerToken + 1
}

// BuildMessages assembles the outbound prompt: prior exchange first
// (when present), then the new user text. When the estimate exceeds the
// budget the oldest context is dropped first; the new user text is
// never truncated, even if it alone exceeds the budget.
func BuildMessages(prior conversation.Exchange, userText string, budgetTokens int) []Message {
	messages := []Message{{Role: RoleUser, Content: userText}}
	if prior.IsEmpty() {
		return messages
	}

	total := estimateTokens(prior.UserText) +
		estimateTokens(prior.ModelText) +
		estimateTokens(userText)
	if budgetTokens > 0 && total > budgetTokens {
		return messages
	}

	return []Message{
		{Role: RoleUser, Content: prior.UserText},
		{Role: RoleAssistant, Content: prior.ModelText},
		{Role: RoleUser, Content: userText},
	}
}
