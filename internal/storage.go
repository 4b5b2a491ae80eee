package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// SQLiteStore reads sessions from a conversationKV table where each row
// holds one session as JSON under the key "session:<id>".
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore wraps an open database
func NewSQLiteStore(db *sql.DB, path string) *SQLiteStore {
	return &SQLiteStore{db: db, path: path}
}

// OpenSQLiteStore opens the database at path read-only
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &StoreError{Path: path, Op: "open", Err: err}
	}
	return NewSQLiteStore(db, path), nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Sessions loads all sessions in insertion order. Malformed rows are skipped.
func (s *SQLiteStore) Sessions() ([]*ConversationSession, error) {
	pairs, err := QueryConversationKV(s.db, SessionKeyPrefix+"%")
	if err != nil {
		return nil, &StoreError{Path: s.path, Op: "read", Err: err}
	}

	sessions := make([]*ConversationSession, 0, len(pairs))
	for _, pair := range pairs {
		session, err := ParseSessionRecord(pair.Key, pair.Value)
		if err != nil {
			LogWarn("Skipping malformed session row: %v", err)
			continue
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// Session loads one session by id
func (s *SQLiteStore) Session(id string) (*ConversationSession, error) {
	key := SessionKeyPrefix + id
	value, ok, err := LookupConversationKV(s.db, key)
	if err != nil {
		return nil, &StoreError{Path: s.path, Op: "read", Err: err}
	}
	if !ok {
		return nil, nil
	}
	return ParseSessionRecord(key, value)
}

// ParseSessionRecord parses a conversationKV row into a session
func ParseSessionRecord(key, value string) (*ConversationSession, error) {
	id := strings.TrimPrefix(key, SessionKeyPrefix)
	if id == key || id == "" {
		return nil, &ParseError{Source: "sqlite", Key: key, Err: fmt.Errorf("invalid session key format")}
	}

	var session ConversationSession
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return nil, &ParseError{Source: "sqlite", Key: key, Err: err}
	}

	session.ID = id
	if session.Metadata.MessageCount != len(session.Messages) {
		LogDebug("Session %s: metadata message count %d does not match %d messages, using message length",
			id, session.Metadata.MessageCount, len(session.Messages))
		session.Metadata.MessageCount = len(session.Messages)
	}

	return &session, nil
}
