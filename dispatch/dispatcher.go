//go:generate go run go.uber.org/mock/mockgen -source=dispatcher.go -destination=../mocks/mock_dispatch.go -package=mocks
// Package dispatch composes the admission pipeline: mention gate,
// permission gate, moderation filter, rate limiter, conversation
// context, provider call, context write, reply. The pipeline is
// terminal on the first failing step and every inbound message yields
// at most one outcome.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"chat-relay/access"
	"chat-relay/ai"
	"chat-relay/conversation"
	"chat-relay/domain"
	"chat-relay/moderation"
	"chat-relay/observability"
	"chat-relay/ratelimit"
)

// IReplySender delivers one reply to the chat platform. A send failure
// is logged and the message is still considered handled, so a flaky
// transport cannot trigger duplicate processing.
type IReplySender interface {
	SendReply(ctx context.Context, reply domain.OutgoingReply) error
}

type OutcomeKind int

const (
	OutcomeSuppressed OutcomeKind = iota
	OutcomeReplied
)

// Outcome reports what the pipeline decided for one message. Reason is
// set for suppressions and error replies.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
	Reply  *domain.OutgoingReply
}

type Config struct {
	ResetCountsAgainstQuota bool
	Model                   string
}

type Dispatcher struct {
	gate     access.IGate
	limiter  ratelimit.ILimiter
	store    conversation.IStore
	provider ai.IProvider
	filter   moderation.IFilter
	sender   IReplySender
	stats    *observability.Manager
	log      *slog.Logger
	cfg      Config

	// chatLocks holds one mutex per chat ever seen and is never pruned:
	// a lock must not be removed while a handler holds it, or two units
	// for the same chat could interleave.
	mu        sync.Mutex
	chatLocks map[int64]*sync.Mutex
}

func NewDispatcher(
	gate access.IGate,
	limiter ratelimit.ILimiter,
	store conversation.IStore,
	provider ai.IProvider,
	filter moderation.IFilter,
	sender IReplySender,
	stats *observability.Manager,
	cfg Config,
	log *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		gate:      gate,
		limiter:   limiter,
		store:     store,
		provider:  provider,
		filter:    filter,
		sender:    sender,
		stats:     stats,
		log:       log,
		cfg:       cfg,
		chatLocks: make(map[int64]*sync.Mutex),
	}
}

// Handle processes one inbound message end to end and never returns an
// error: failures end as a logged suppression or an apology reply.
// Units for the same chat are serialized so a slow completion cannot
// overwrite the conversation context with stale data.
func (d *Dispatcher) Handle(ctx context.Context, msg domain.InboundMessage) Outcome {
	lock := d.chatLock(msg.Identity.ChatID)
	lock.Lock()
	defer lock.Unlock()

	d.stats.IncrHandled()

	if cmd := domain.ParseCommand(msg.Text); cmd != domain.CommandNone {
		return d.handleCommand(ctx, cmd, msg)
	}

	// Groups only get an answer when the bot is addressed. Not a
	// permission matter, so nothing is audited here.
	if msg.Identity.IsGroup && !msg.Mentioned {
		d.stats.IncrSuppressed()
		return Outcome{Kind: OutcomeSuppressed, Reason: "not mentioned"}
	}

	// Permission precedes every reply-producing step: an unlisted
	// sender must never receive a prompt, not even for an empty text.
	if err := d.gate.Check(msg.Identity); err != nil {
		d.stats.IncrPermissionDenied()
		return Outcome{Kind: OutcomeSuppressed, Reason: "permission denied"}
	}

	if msg.Text == "" {
		return d.reply(ctx, msg, "❓ Please ask a question")
	}

	verdict := d.filter.Inspect(msg.Text)
	if verdict.Flagged {
		d.stats.IncrSuppressed()
		d.log.Warn("message blocked by moderation",
			"message_id", msg.ID,
			"user_id", msg.Identity.UserID,
			"chat_id", msg.Identity.ChatID,
			"words", verdict.Words,
			"lang", verdict.Language,
		)
		return Outcome{Kind: OutcomeSuppressed, Reason: "blocked words"}
	}

	if decision := d.limiter.TryAcquire(msg.Identity.UserID); !decision.Allowed {
		d.stats.IncrRateLimited()
		d.log.Info("message rate limited",
			"message_id", msg.ID,
			"user_id", msg.Identity.UserID,
			"reason", decision.Reason,
			"retry_after", decision.RetryAfter,
		)
		// The sender already passed the permission gate, so this is
		// the one rejection that gets a user-visible reply.
		return d.reply(ctx, msg, waitMessage(decision.RetryAfter))
	}

	prior, err := d.store.Get(msg.Identity.ChatID)
	if err != nil {
		// A broken context read degrades continuity, not availability.
		d.log.Error("conversation context read failed", "chat_id", msg.Identity.ChatID, "err", err)
		prior = conversation.Exchange{}
	}

	start := time.Now()
	text, err := d.provider.Complete(ctx, prior, msg.Text)
	if err != nil {
		d.stats.ReportProviderFailure()
		return d.replyProviderFailure(ctx, msg, err)
	}
	d.stats.ReportProviderSuccess()
	d.stats.IncrCompletions()

	if err := d.store.Set(msg.Identity.ChatID, msg.Text, text); err != nil {
		d.log.Error("conversation context write failed", "chat_id", msg.Identity.ChatID, "err", err)
	}

	d.log.Info("completion sent",
		"message_id", msg.ID,
		"user_id", msg.Identity.UserID,
		"username", msg.Identity.Username,
		"latency", time.Since(start),
		"lang", verdict.Language,
		"response_len", len(text),
	)
	return d.reply(ctx, msg, text)
}

func (d *Dispatcher) replyProviderFailure(ctx context.Context, msg domain.InboundMessage, err error) Outcome {
	var failure *ai.Failure
	kind := ai.FailureUnavailable
	if errors.As(err, &failure) {
		kind = failure.Kind
		d.log.Error("provider call failed",
			"message_id", msg.ID,
			"user_id", msg.Identity.UserID,
			"kind", failure.Kind.String(),
			"attempts", failure.Attempts,
			"err", failure.Err,
		)
	} else {
		d.log.Error("provider call failed", "message_id", msg.ID, "err", err)
	}

	// Neither failure escalates further, both end as a generic apology.
	if kind == ai.FailureRejected {
		return d.reply(ctx, msg, "❌ Sorry, I can't answer that request.")
	}
	return d.reply(ctx, msg, "❌ Sorry, an error occurred while processing your request. Please try again later.")
}

// reply sends and absorbs transport failures: the message counts as
// handled either way.
func (d *Dispatcher) reply(ctx context.Context, msg domain.InboundMessage, text string) Outcome {
	out := domain.OutgoingReply{
		ChatID:  msg.Identity.ChatID,
		ReplyTo: msg.MessageID,
		Text:    text,
	}
	if err := d.sender.SendReply(ctx, out); err != nil {
		d.log.Error("reply delivery failed",
			"message_id", msg.ID,
			"chat_id", out.ChatID,
			"err", err,
		)
	}
	return Outcome{Kind: OutcomeReplied, Reply: &out}
}

func (d *Dispatcher) chatLock(chatID int64) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	lock, ok := d.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		d.chatLocks[chatID] = lock
	}
	return lock
}

func waitMessage(retryAfter time.Duration) string {
	seconds := int64(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return fmt.Sprintf("⚠️ You're sending messages too frequently. Please wait %ds.", seconds)
}
