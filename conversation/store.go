// Package conversation keeps the short-term context given to the model:
// exactly one prior exchange per chat, overwritten after every
// successful completion. Entries live in an in-memory BadgerDB, so a
// process restart clears all context.
package conversation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Exchange is the single retained turn: what the user asked and what
// the model answered.
type Exchange struct {
	UserText  string    `json:"user_text"`
	ModelText string    `json:"model_text"`
	At        time.Time `json:"at"`
}

// IsEmpty reports whether the chat has no prior turn.
func (e Exchange) IsEmpty() bool {
	return e.UserText == "" && e.ModelText == ""
}

type IStore interface {
	Get(chatID int64) (Exchange, error)
	Set(chatID int64, userText, modelText string) error
	Reset(chatID int64) error
}

type Store struct {
	db  *badger.DB
	log *slog.Logger
	now func() time.Time
}

func NewStore(db *badger.DB, log *slog.Logger) *Store {
	return &Store{db: db, log: log, now: time.Now}
}

// Get returns the prior exchange for a chat. Absence is not an error,
// it yields an empty exchange.
func (s *Store) Get(chatID int64) (Exchange, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(contextKey(chatID))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return Exchange{}, nil
	}
	if err != nil {
		return Exchange{}, err
	}

	var exchange Exchange
	if err := json.Unmarshal(raw, &exchange); err != nil {
		return Exchange{}, err
	}
	return exchange, nil
}

// Set overwrites the chat's context unconditionally. Concurrent writers
// are last-write-wins, ordering is the dispatcher's concern.
func (s *Store) Set(chatID int64, userText, modelText string) error {
	bytes, err := json.Marshal(Exchange{
		UserText:  userText,
		ModelText: modelText,
		At:        s.now(),
	})
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(contextKey(chatID), bytes)
	})
}

// Reset clears the chat's context. Deleting an absent entry is a no-op.
func (s *Store) Reset(chatID int64) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(contextKey(chatID))
	})
	if err != nil && err != badger.ErrKeyNotFound {
		return err
	}
	s.log.Debug("conversation context cleared", "chat_id", chatID)
	return nil
}

func contextKey(chatID int64) []byte {
	return []byte(fmt.Sprintf("ctx:%d", chatID))
}

// OpenInMemory opens the backing store. No files are created: rate
// limits and context are process-local state only.
func OpenInMemory() (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.WARNING))
}
