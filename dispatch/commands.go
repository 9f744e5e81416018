package dispatch

import (
	"context"
	"fmt"
	"time"

	"chat-relay/domain"
)

const welcomeText = "👋 Hello! I'm an AI assistant.\n\n" +
	"📝 How to use:\n" +
	"1. In private chat, just send me your questions directly\n" +
	"2. In groups, mention me (@bot) with your question\n" +
	"3. Use /help to see all available commands\n" +
	"4. Use /status to check system status\n\n" +
	"⚠️ Note: Message rate limiting is enabled to prevent abuse"

const helpText = "🤖 Bot Commands:\n\n" +
	"/start - Start the bot and see welcome message\n" +
	"/help - Display this help message\n" +
	"/status - Check system status\n" +
	"/reset - Reset your conversation\n" +
	"/chatid - Show this chat's identifier\n" +
	"\n" +
	"💡 Tips:\n" +
	"- In private chat, just send your questions directly\n" +
	"- In groups, mention me with @bot_username"

func (d *Dispatcher) handleCommand(ctx context.Context, cmd domain.Command, msg domain.InboundMessage) Outcome {
	switch cmd {
	case domain.CommandStart:
		return d.reply(ctx, msg, welcomeText)
	case domain.CommandHelp:
		return d.reply(ctx, msg, helpText)
	case domain.CommandChatID:
		return d.reply(ctx, msg, fmt.Sprintf("💬 Chat ID: %d", msg.Identity.ChatID))
	case domain.CommandStatus:
		return d.reply(ctx, msg, d.statusText())
	}
	// ParseCommand yields the commands above, reset, or CommandNone,
	// and CommandNone never reaches this function.
	return d.handleReset(ctx, msg)
}

// handleReset clears the caller's conversation context. The permission
// gate still applies, and by default the reset consumes a rate-limit
// slot so reset spam is bounded like any other traffic.
func (d *Dispatcher) handleReset(ctx context.Context, msg domain.InboundMessage) Outcome {
	if err := d.gate.Check(msg.Identity); err != nil {
		d.stats.IncrPermissionDenied()
		return Outcome{Kind: OutcomeSuppressed, Reason: "permission denied"}
	}

	if d.cfg.ResetCountsAgainstQuota {
		if decision := d.limiter.TryAcquire(msg.Identity.UserID); !decision.Allowed {
			d.stats.IncrRateLimited()
			return d.reply(ctx, msg, waitMessage(decision.RetryAfter))
		}
	}

	if err := d.store.Reset(msg.Identity.ChatID); err != nil {
		d.log.Error("conversation reset failed", "chat_id", msg.Identity.ChatID, "err", err)
		return d.reply(ctx, msg, "❌ Sorry, an error occurred while processing your request. Please try again later.")
	}
	return d.reply(ctx, msg, "✨ Your conversation history has been reset")
}

func (d *Dispatcher) statusText() string {
	stats := d.stats.Snapshot()
	return fmt.Sprintf(
		"🔄 System Status:\n\n"+
			"✅ Bot is running normally\n"+
			"📊 Current model: %s\n"+
			"🩺 Provider health: %s (%s)\n"+
			"⏰ Server time: %s\n"+
			"⏱ Uptime: %s\n"+
			"💬 Completions: %d (provider failures: %d)\n"+
			"🚦 Rate limited: %d, permission denied: %d\n"+
			"🖥 CPU: %.1f%%, RSS: %d MB",
		d.cfg.Model,
		stats.ProviderState,
		d.provider.ClientName(),
		time.Now().Format("2006-01-02 15:04:05"),
		stats.Uptime.Round(time.Second),
		stats.Completions,
		stats.ProviderFailures,
		stats.RateLimited,
		stats.PermissionDenied,
		stats.CPUPercent,
		stats.RAMBytes/(1024*1024),
	)
}
