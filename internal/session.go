package internal

import (
	"path/filepath"
	"strings"
	"time"
)

// Sender identifies who wrote a message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ConversationSession represents one archived conversation
type ConversationSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Language  Language  `json:"language"`
	Messages  []Message `json:"messages"`
	UpdatedAt time.Time `json:"updatedAt"`
	Metadata  Metadata  `json:"metadata"`
}

// Message is one turn in a session. Messages are append-only.
type Message struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	Sender       Sender     `json:"sender"`
	SanskritText string     `json:"sanskritText,omitempty"`
	Citations    []Citation `json:"citations,omitempty"`
}

// Citation points at the scripture or document a message quotes
type Citation struct {
	Source    string `json:"source"`
	Reference string `json:"reference"`
}

// Metadata contains derived session information
type Metadata struct {
	MessageCount int      `json:"messageCount"`
	Topics       []string `json:"topics,omitempty"`
}

// ValidateSession checks the invariants the search pipeline relies on
func ValidateSession(session *ConversationSession) error {
	if session == nil {
		return ErrNilSession
	}
	if session.ID == "" {
		return ErrMissingSessionID
	}
	return nil
}

// ValidSessionID reports whether id can name a file inside an archive directory
func ValidSessionID(id string) bool {
	if id == "" || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return false
	}
	return filepath.Base(id) == id
}
