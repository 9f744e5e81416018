// Package domain contains the core concepts of the relay.
// This file defines inbound and outbound message values.
// Messages are immutable once observed.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the key under which permission and rate-limit state is
// tracked: the platform-assigned user, plus the chat it was seen in.
type Identity struct {
	UserID   int64
	Username string
	ChatID   int64
	IsGroup  bool
}

// InboundMessage represents one message event received from the chat
// platform, already reduced to what the pipeline needs.
type InboundMessage struct {
	ID         uuid.UUID // correlation identifier, assigned on receipt
	Identity   Identity
	MessageID  int // platform message identifier, used for reply threading
	Text       string
	Mentioned  bool
	ReceivedAt time.Time
}

// OutgoingReply is the single outcome of an accepted message.
type OutgoingReply struct {
	ChatID  int64
	ReplyTo int
	Text    string
}
