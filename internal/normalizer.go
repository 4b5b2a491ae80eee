package internal

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Normalizer repairs imported sessions so they satisfy the archive invariants
type Normalizer struct {
	newID func() string
}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{newID: func() string { return uuid.New().String() }}
}

// NormalizeSession returns a normalized copy of session
func (n *Normalizer) NormalizeSession(session *ConversationSession) (*ConversationSession, error) {
	if session == nil {
		return nil, ErrNilSession
	}

	out := *session
	if strings.TrimSpace(out.ID) == "" {
		out.ID = n.newID()
	} else if !ValidSessionID(out.ID) {
		id := n.newID()
		LogWarn("Session id %q is not a valid file name, using %s", out.ID, id)
		out.ID = id
	}

	out.Title = strings.TrimSpace(out.Title)
	if out.Title == "" {
		out.Title = "Untitled"
	}

	lang, err := ParseLanguage(string(out.Language))
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", out.ID, err)
	}
	if lang == LanguageAll {
		lang = LanguageEnglish
	}
	out.Language = lang

	out.Messages = make([]Message, 0, len(session.Messages))
	for _, msg := range session.Messages {
		out.Messages = append(out.Messages, n.normalizeMessage(msg))
	}

	out.Metadata.MessageCount = len(out.Messages)
	out.Metadata.Topics = normalizeTopics(session.Metadata.Topics)

	return &out, nil
}

// normalizeMessage fills in missing ids and sender
func (n *Normalizer) normalizeMessage(msg Message) Message {
	if msg.ID == "" {
		msg.ID = n.newID()
	}
	switch Sender(strings.ToLower(string(msg.Sender))) {
	case SenderAssistant:
		msg.Sender = SenderAssistant
	default:
		msg.Sender = SenderUser
	}
	return msg
}

func normalizeTopics(topics []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, topic := range topics {
		topic = strings.TrimSpace(topic)
		key := strings.ToLower(topic)
		if topic == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, topic)
	}
	return out
}

// NormalizeAllSessions normalizes sessions, skipping ones that cannot be repaired
func (n *Normalizer) NormalizeAllSessions(sessions []*ConversationSession) []*ConversationSession {
	normalized := make([]*ConversationSession, 0, len(sessions))
	for _, session := range sessions {
		out, err := n.NormalizeSession(session)
		if err != nil {
			LogWarn("Skipping session during normalization: %v", err)
			continue
		}
		normalized = append(normalized, out)
	}
	return normalized
}
