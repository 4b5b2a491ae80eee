package internal

// ConversationStore provides read-only access to archived sessions.
// Sessions returns them in the store's native order; Session returns
// nil, nil when the id is unknown.
type ConversationStore interface {
	Sessions() ([]*ConversationSession, error)
	Session(id string) (*ConversationSession, error)
}

// MemoryStore is a ConversationStore over an in-memory snapshot
type MemoryStore struct {
	sessions []*ConversationSession
}

// NewMemoryStore creates a MemoryStore holding sessions in the given order
func NewMemoryStore(sessions ...*ConversationSession) *MemoryStore {
	return &MemoryStore{sessions: sessions}
}

// Sessions returns a copy of the session list
func (m *MemoryStore) Sessions() ([]*ConversationSession, error) {
	out := make([]*ConversationSession, len(m.sessions))
	copy(out, m.sessions)
	return out, nil
}

// Session looks up a session by id
func (m *MemoryStore) Session(id string) (*ConversationSession, error) {
	for _, session := range m.sessions {
		if session != nil && session.ID == id {
			return session, nil
		}
	}
	return nil, nil
}
