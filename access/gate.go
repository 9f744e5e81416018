// Package access implements the permission gate: the first stateful-free
// check of the admission pipeline. An empty allow-list dimension means
// that dimension imposes no restriction.
package access

import (
	"log/slog"
	"strconv"

	"github.com/samber/lo"

	"chat-relay/domain"
	"chat-relay/errors"
)

type IGate interface {
	Check(id domain.Identity) error
}

// AllowList holds the two permitted sets, loaded once at startup.
// Users may be listed by numeric ID or by handle.
type AllowList struct {
	Users  []string
	Groups []int64
}

type Gate struct {
	allowList AllowList
	log       *slog.Logger
}

func NewGate(allowList AllowList, log *slog.Logger) *Gate {
	return &Gate{allowList: allowList, log: log}
}

// Check verifies both dimensions and audits every rejection. The
// returned sentinel names the failing dimension. A rejection is
// terminal for the message, there is nothing to retry.
func (g *Gate) Check(id domain.Identity) error {
	if len(g.allowList.Users) > 0 && !g.userListed(id) {
		g.log.Warn("message rejected",
			"reason", errors.ErrUserNotAllowlisted,
			"user_id", id.UserID,
			"username", id.Username,
			"chat_id", id.ChatID,
		)
		return errors.ErrUserNotAllowlisted
	}
	if id.IsGroup && len(g.allowList.Groups) > 0 && !lo.Contains(g.allowList.Groups, id.ChatID) {
		g.log.Warn("message rejected",
			"reason", errors.ErrGroupNotAllowlisted,
			"user_id", id.UserID,
			"chat_id", id.ChatID,
		)
		return errors.ErrGroupNotAllowlisted
	}
	return nil
}

// GroupAllowed reports whether a group chat itself is permitted,
// independently of any sender. Used by the join guard.
func (g *Gate) GroupAllowed(chatID int64) bool {
	return len(g.allowList.Groups) == 0 || lo.Contains(g.allowList.Groups, chatID)
}

func (g *Gate) userListed(id domain.Identity) bool {
	return lo.Contains(g.allowList.Users, strconv.FormatInt(id.UserID, 10)) ||
		(id.Username != "" && lo.Contains(g.allowList.Users, id.Username))
}
