package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/convo-search/internal"
)

// JSONSerializer exports sessions as a pretty-printed JSON array
type JSONSerializer struct{}

// Serialize writes sessions as JSON
func (s *JSONSerializer) Serialize(sessions []*internal.ConversationSession, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if sessions == nil {
		sessions = []*internal.ConversationSession{}
	}
	return enc.Encode(sessions)
}

// Extension returns the file extension for this format
func (s *JSONSerializer) Extension() string {
	return "json"
}

// MIMEType returns the content type for this format
func (s *JSONSerializer) MIMEType() string {
	return "application/json"
}

// ImportJSON reads sessions written by JSONSerializer. A single session object is also accepted.
func ImportJSON(r io.Reader) ([]*internal.ConversationSession, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import: %w", err)
	}

	var sessions []*internal.ConversationSession
	if err := json.Unmarshal(data, &sessions); err == nil {
		return sessions, nil
	}

	var single internal.ConversationSession
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, &internal.ParseError{Source: "import", Key: "json", Err: err}
	}
	return []*internal.ConversationSession{&single}, nil
}
