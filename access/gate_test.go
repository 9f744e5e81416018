package access

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chat-relay/domain"
	"chat-relay/errors"
)

func identity(userID int64, username string, chatID int64, isGroup bool) domain.Identity {
	return domain.Identity{UserID: userID, Username: username, ChatID: chatID, IsGroup: isGroup}
}

func TestGate_Check(t *testing.T) {
	tests := []struct {
		name      string
		allowList AllowList
		id        domain.Identity
		expected  error
	}{
		{
			name:      "empty allow-lists admit everyone",
			allowList: AllowList{},
			id:        identity(1, "bob", 1, false),
		},
		{
			name:      "listed handle passes",
			allowList: AllowList{Users: []string{"alice"}},
			id:        identity(7, "alice", 7, false),
		},
		{
			name:      "listed numeric ID passes",
			allowList: AllowList{Users: []string{"1234"}},
			id:        identity(1234, "whoever", 1234, false),
		},
		{
			name:      "unlisted user is rejected",
			allowList: AllowList{Users: []string{"alice"}},
			id:        identity(8, "bob", 8, false),
			expected:  errors.ErrUserNotAllowlisted,
		},
		{
			name:      "group restriction only applies to groups",
			allowList: AllowList{Groups: []int64{-100}},
			id:        identity(1, "bob", 55, false),
		},
		{
			name:      "listed group passes",
			allowList: AllowList{Groups: []int64{-100}},
			id:        identity(1, "bob", -100, true),
		},
		{
			name:      "unlisted group is rejected",
			allowList: AllowList{Groups: []int64{-100}},
			id:        identity(1, "bob", -200, true),
			expected:  errors.ErrGroupNotAllowlisted,
		},
		{
			name:      "allowed user in unlisted group is rejected",
			allowList: AllowList{Users: []string{"alice"}, Groups: []int64{-100}},
			id:        identity(7, "alice", -200, true),
			expected:  errors.ErrGroupNotAllowlisted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(tt.allowList, testLogger())
			err := gate.Check(tt.id)
			if tt.expected == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestGate_GroupAllowed(t *testing.T) {
	req := require.New(t)

	open := NewGate(AllowList{}, testLogger())
	req.True(open.GroupAllowed(-1))

	restricted := NewGate(AllowList{Groups: []int64{-100}}, testLogger())
	req.True(restricted.GroupAllowed(-100))
	req.False(restricted.GroupAllowed(-200))
}
