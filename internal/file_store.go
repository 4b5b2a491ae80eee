package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const archiveVersion = "1.0"

// FileStore is a directory archive: a YAML index listing sessions in native
// order plus one JSON file per session.
type FileStore struct {
	dir string
}

// ArchiveMetadata stores metadata about the archive
type ArchiveMetadata struct {
	Version   string    `yaml:"version"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// ArchiveIndexEntry represents a session entry in the index
type ArchiveIndexEntry struct {
	ID           string    `yaml:"id"`
	Title        string    `yaml:"title,omitempty"`
	Language     Language  `yaml:"language,omitempty"`
	UpdatedAt    time.Time `yaml:"updated_at"`
	MessageCount int       `yaml:"message_count"`
	Topics       []string  `yaml:"topics,omitempty"`
}

// ArchiveIndex represents the YAML index of all sessions
type ArchiveIndex struct {
	Sessions []ArchiveIndexEntry `yaml:"sessions"`
	Metadata ArchiveMetadata     `yaml:"metadata"`
}

// NewFileStore creates a FileStore rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the archive directory
func (fs *FileStore) Dir() string {
	return fs.dir
}

// IndexPath returns the path to the session index YAML file
func (fs *FileStore) IndexPath() string {
	return filepath.Join(fs.dir, "sessions.yaml")
}

// SessionPath returns the path to a session's file
func (fs *FileStore) SessionPath(sessionID string) string {
	return filepath.Join(fs.dir, fmt.Sprintf("session_%s.json", sessionID))
}

// LoadIndex loads the session index. A missing index is an empty archive.
func (fs *FileStore) LoadIndex() (*ArchiveIndex, error) {
	data, err := os.ReadFile(fs.IndexPath())
	if errors.Is(err, os.ErrNotExist) {
		return &ArchiveIndex{Metadata: ArchiveMetadata{Version: archiveVersion}}, nil
	}
	if err != nil {
		return nil, &StoreError{Path: fs.IndexPath(), Op: "read", Err: err}
	}

	var index ArchiveIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, &ParseError{Source: "archive", Key: fs.IndexPath(), Err: err}
	}
	return &index, nil
}

// SaveIndex saves the session index
func (fs *FileStore) SaveIndex(index *ArchiveIndex) error {
	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return &StoreError{Path: fs.dir, Op: "write", Err: err}
	}

	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	if err := os.WriteFile(fs.IndexPath(), data, 0644); err != nil {
		return &StoreError{Path: fs.IndexPath(), Op: "write", Err: err}
	}
	return nil
}

// LoadSession loads a single session file
func (fs *FileStore) LoadSession(sessionID string) (*ConversationSession, error) {
	path := fs.SessionPath(sessionID)
	if !ValidSessionID(sessionID) {
		return nil, &StoreError{Path: fs.dir, Op: "read", Err: fmt.Errorf("%w: %q", ErrInvalidSessionID, sessionID)}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StoreError{Path: path, Op: "read", Err: err}
	}

	var session ConversationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, &ParseError{Source: "archive", Key: path, Err: err}
	}

	if session.Metadata.MessageCount != len(session.Messages) {
		LogDebug("Session %s: metadata message count %d does not match %d messages, using message length",
			session.ID, session.Metadata.MessageCount, len(session.Messages))
		session.Metadata.MessageCount = len(session.Messages)
	}
	return &session, nil
}

// SaveSession writes a single session file
func (fs *FileStore) SaveSession(session *ConversationSession) error {
	if !ValidSessionID(session.ID) {
		return &StoreError{Path: fs.dir, Op: "write", Err: fmt.Errorf("%w: %q", ErrInvalidSessionID, session.ID)}
	}
	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return &StoreError{Path: fs.dir, Op: "write", Err: err}
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	path := fs.SessionPath(session.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &StoreError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// Sessions loads every indexed session in index order. Unreadable session
// files are logged and skipped.
func (fs *FileStore) Sessions() ([]*ConversationSession, error) {
	index, err := fs.LoadIndex()
	if err != nil {
		return nil, err
	}

	sessions := make([]*ConversationSession, 0, len(index.Sessions))
	for _, entry := range index.Sessions {
		session, err := fs.LoadSession(entry.ID)
		if err != nil {
			LogWarn("Skipping archived session %s: %v", entry.ID, err)
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// Session loads one session if the index lists it
func (fs *FileStore) Session(id string) (*ConversationSession, error) {
	index, err := fs.LoadIndex()
	if err != nil {
		return nil, err
	}
	for _, entry := range index.Sessions {
		if entry.ID == id {
			return fs.LoadSession(id)
		}
	}
	return nil, nil
}

// SaveSessions merges sessions into the archive. Sessions already present are
// replaced in place; new ones are appended to the index.
func (fs *FileStore) SaveSessions(sessions []*ConversationSession) (int, error) {
	index, err := fs.LoadIndex()
	if err != nil {
		return 0, err
	}

	now := time.Now()
	if index.Metadata.CreatedAt.IsZero() {
		index.Metadata.CreatedAt = now
	}
	index.Metadata.UpdatedAt = now
	index.Metadata.Version = archiveVersion

	positions := make(map[string]int, len(index.Sessions))
	for i, entry := range index.Sessions {
		positions[entry.ID] = i
	}

	saved := 0
	for _, session := range sessions {
		if session == nil {
			continue
		}
		if err := fs.SaveSession(session); err != nil {
			LogWarn("Failed to save session %s: %v", session.ID, err)
			continue
		}
		saved++

		entry := indexEntry(session)
		if i, ok := positions[session.ID]; ok {
			index.Sessions[i] = entry
			continue
		}
		positions[session.ID] = len(index.Sessions)
		index.Sessions = append(index.Sessions, entry)
	}

	return saved, fs.SaveIndex(index)
}

func indexEntry(session *ConversationSession) ArchiveIndexEntry {
	return ArchiveIndexEntry{
		ID:           session.ID,
		Title:        session.Title,
		Language:     session.Language,
		UpdatedAt:    session.UpdatedAt,
		MessageCount: session.Metadata.MessageCount,
		Topics:       session.Metadata.Topics,
	}
}
