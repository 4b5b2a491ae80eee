package internal

// Deduplicator removes duplicate sessions
type Deduplicator struct{}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate collapses sessions sharing an id into the most recently
// updated copy, keeping the position where the id was first seen.
func (d *Deduplicator) Deduplicate(sessions []*ConversationSession) []*ConversationSession {
	index := make(map[string]int)
	var unique []*ConversationSession

	for _, session := range sessions {
		if session == nil {
			continue
		}
		i, seen := index[session.ID]
		if !seen {
			index[session.ID] = len(unique)
			unique = append(unique, session)
			continue
		}
		if session.UpdatedAt.After(unique[i].UpdatedAt) {
			unique[i] = session
		}
	}

	return unique
}
