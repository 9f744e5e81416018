package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"chat-relay/access"
	"chat-relay/ai"
	"chat-relay/conversation"
	"chat-relay/dispatch"
	"chat-relay/internal"
	"chat-relay/moderation"
	"chat-relay/observability"
	"chat-relay/ratelimit"
	"chat-relay/telegram"
	"chat-relay/workers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the bot lifecycle, and centralizes
// error reporting, so that 'defer' cleanups execute before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	// 2. Conversation store (in-memory BadgerDB, nothing survives a restart)
	db, err := conversation.OpenInMemory()
	if err != nil {
		return fmt.Errorf("conversation store opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing conversation store...")
		_ = db.Close()
	}()
	store := conversation.NewStore(db, log)

	// 3. Admission pipeline components
	gate := access.NewGate(config.AllowList(), log)
	limiter := ratelimit.NewLimiter(
		config.MaxMessagesPerHour,
		time.Hour,
		time.Duration(config.CooldownSeconds)*time.Second,
	)
	filter, err := moderation.NewFilter(config.BlockedWordList(), log)
	if err != nil {
		return fmt.Errorf("moderation filter: %w", err)
	}
	stats := observability.NewManager(log)

	// 4. Provider client
	var client ai.IClient
	switch config.Provider {
	case "openai":
		client = ai.NewOpenAIClient(config.APIURL, config.APIKey)
	default:
		client = ai.NewAnthropicClient(config.APIURL, config.APIKey, config.APIVersion)
	}
	provider := ai.NewProvider(client, ai.Config{
		Model:              config.Model,
		SystemPrompt:       config.SystemPrompt,
		MaxTokens:          config.MaxTokens,
		Temperature:        config.Temperature,
		RequestTimeout:     config.RequestTimeout,
		MaxAttempts:        config.MaxAttempts,
		MaxResponseLength:  config.MaxResponseLength,
		PromptBudgetTokens: config.PromptBudgetTokens,
	}, log)

	// 5. Transport & Dispatcher
	bot, err := telegram.NewBot(config.TelegramToken, gate, log)
	if err != nil {
		return fmt.Errorf("telegram bot: %w", err)
	}
	dispatcher := dispatch.NewDispatcher(
		gate, limiter, store, provider, filter, bot, stats,
		dispatch.Config{
			ResetCountsAgainstQuota: config.ResetCountsAgainstQuota,
			Model:                   config.Model,
		},
		log,
	)
	bot.Attach(dispatcher)
	if err := bot.RegisterCommands(); err != nil {
		log.Warn("Failed to register command menu", "err", err)
	}

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 7. Supervised workers: poller + rate-record janitor
	sup := workers.NewSupervisor(log)
	sup.Add(bot, workers.NewJanitorWorker(log, limiter, config.JanitorInterval))

	log.Info("Bot started",
		"bot", bot.Username(),
		"provider", provider.ClientName(),
		"model", config.Model,
	)
	sup.Run(ctx)

	log.Info("Program stopped cleanly")
	return nil
}
