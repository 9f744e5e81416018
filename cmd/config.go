package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"chat-relay/access"
)

var validate = validator.New()

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN,required=true"`

	// Comma-separated. Empty means the dimension is unrestricted.
	AllowedUsers  string `env:"ALLOWED_USERS"`
	AllowedGroups string `env:"ALLOWED_GROUPS"`
	BlockedWords  string `env:"BLOCKED_WORDS"`

	MaxMessagesPerHour      int  `env:"MAX_MESSAGES_PER_HOUR,default=50"`
	CooldownSeconds         int  `env:"COOLDOWN_SECONDS,default=5"`
	ResetCountsAgainstQuota bool `env:"RESET_COUNTS_AGAINST_QUOTA,default=true"`

	Provider           string        `env:"PROVIDER,default=anthropic" validate:"oneof=anthropic openai"`
	APIURL             string        `env:"API_URL"`
	APIKey             string        `env:"API_KEY,required=true"`
	APIVersion         string        `env:"API_VERSION,default=2023-06-01"`
	Model              string        `env:"MODEL,required=true"`
	MaxTokens          int           `env:"MAX_TOKENS,default=1024" validate:"gt=0"`
	Temperature        float64       `env:"TEMPERATURE,default=0.7" validate:"gte=0,lte=2"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT,default=30s"`
	MaxAttempts        int           `env:"MAX_ATTEMPTS,default=3" validate:"gte=1,lte=10"`
	PromptBudgetTokens int           `env:"PROMPT_BUDGET_TOKENS,default=100000"`
	SystemPrompt       string        `env:"SYSTEM_PROMPT,default=You are a helpful AI assistant for telegram."`

	MaxResponseLength int `env:"MAX_RESPONSE_LENGTH,default=4000" validate:"gt=0"`

	JanitorInterval time.Duration `env:"JANITOR_INTERVAL,default=10m"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
}

func (c Config) Validate() error {
	return validate.Struct(c)
}

// AllowList parses the configured sets. Unparsable group IDs are
// dropped by the caller's validation pass in cmd/tools; here they are
// skipped silently since Validate already ran.
func (c Config) AllowList() access.AllowList {
	list := access.AllowList{Users: splitList(c.AllowedUsers)}
	for _, raw := range splitList(c.AllowedGroups) {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			list.Groups = append(list.Groups, id)
		}
	}
	return list
}

func (c Config) BlockedWordList() []string {
	return splitList(c.BlockedWords)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
