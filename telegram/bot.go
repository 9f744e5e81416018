// Package telegram binds the pipeline to the Telegram Bot API: a
// long-poll worker feeding the dispatcher and the reply sender it
// answers through.
package telegram

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"chat-relay/dispatch"
	"chat-relay/domain"
)

// IDispatcher is the pipeline as seen from the transport.
type IDispatcher interface {
	Handle(ctx context.Context, msg domain.InboundMessage) dispatch.Outcome
}

// IGroupPolicy decides whether the bot may stay in a group it was just
// added to.
type IGroupPolicy interface {
	GroupAllowed(chatID int64) bool
}

type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher IDispatcher
	groups     IGroupPolicy
	log        *slog.Logger
}

func NewBot(token string, groups IGroupPolicy, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, groups: groups, log: log}, nil
}

// Attach wires the dispatcher after construction: the dispatcher needs
// the bot as its reply sender, so the two are linked in this order.
func (b *Bot) Attach(dispatcher IDispatcher) {
	b.dispatcher = dispatcher
}

// Username returns the bot's own handle, used for mention detection.
func (b *Bot) Username() string { return b.api.Self.UserName }

// RegisterCommands publishes the command menu to Telegram.
func (b *Bot) RegisterCommands() error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start the bot"},
		tgbotapi.BotCommand{Command: "help", Description: "Show help message"},
		tgbotapi.BotCommand{Command: "status", Description: "Check bot status"},
		tgbotapi.BotCommand{Command: "reset", Description: "Reset conversation"},
		tgbotapi.BotCommand{Command: "chatid", Description: "Show this chat's identifier"},
	)
	_, err := b.api.Request(commands)
	return err
}

// SendReply implements dispatch.IReplySender.
func (b *Bot) SendReply(_ context.Context, reply domain.OutgoingReply) error {
	msg := tgbotapi.NewMessage(reply.ChatID, reply.Text)
	if reply.ReplyTo != 0 {
		msg.ReplyToMessageID = reply.ReplyTo
	}
	_, err := b.api.Send(msg)
	return err
}

// Run is the long-poll loop. Each update is dispatched in its own
// goroutine; ordering within a chat is the dispatcher's per-chat lock.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("Starting telegram poller", "bot", b.Username())

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.log.Debug("Context done, stopping telegram poller")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			if len(update.Message.NewChatMembers) > 0 {
				b.handleNewChatMembers(ctx, update.Message)
				continue
			}
			if update.Message.Text == "" || update.Message.From == nil {
				continue
			}
			msg := b.toInbound(update.Message)
			go b.dispatcher.Handle(ctx, msg)
		}
	}
}

// handleNewChatMembers leaves groups the bot is not allowed in, after a
// short notice to whoever added it.
func (b *Bot) handleNewChatMembers(ctx context.Context, msg *tgbotapi.Message) {
	self := b.api.Self.ID
	added := false
	for _, member := range msg.NewChatMembers {
		if member.ID == self {
			added = true
			break
		}
	}
	if !added {
		return
	}

	if b.groups.GroupAllowed(msg.Chat.ID) {
		b.log.Info("Bot added to group", "chat_id", msg.Chat.ID, "title", msg.Chat.Title)
		return
	}

	b.log.Warn("Bot added to unauthorized group, leaving",
		"chat_id", msg.Chat.ID,
		"title", msg.Chat.Title,
	)
	_ = b.SendReply(ctx, domain.OutgoingReply{
		ChatID: msg.Chat.ID,
		Text:   "⚠️ This bot can only be used in authorized groups. Leaving the chat...",
	})
	if _, err := b.api.Request(tgbotapi.LeaveChatConfig{ChatID: msg.Chat.ID}); err != nil {
		b.log.Error("Failed to leave group", "chat_id", msg.Chat.ID, "err", err)
	}
}

func (b *Bot) toInbound(msg *tgbotapi.Message) domain.InboundMessage {
	isGroup := msg.Chat.IsGroup() || msg.Chat.IsSuperGroup()
	text, mentioned := stripMention(msg.Text, b.Username())

	return domain.InboundMessage{
		ID: uuid.New(),
		Identity: domain.Identity{
			UserID:   msg.From.ID,
			Username: msg.From.UserName,
			ChatID:   msg.Chat.ID,
			IsGroup:  isGroup,
		},
		MessageID:  msg.MessageID,
		Text:       text,
		Mentioned:  mentioned,
		ReceivedAt: time.Now(),
	}
}

// stripMention removes the bot's @handle from the text and reports
// whether it was present.
func stripMention(text, username string) (string, bool) {
	if username == "" {
		return strings.TrimSpace(text), false
	}
	mention := "@" + username
	if !strings.Contains(text, mention) {
		return strings.TrimSpace(text), false
	}
	return strings.TrimSpace(strings.ReplaceAll(text, mention, "")), true
}
