package export

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/iksnae/convo-search/internal"
)

var csvHeader = []string{"session_id", "title", "language", "updated_at", "message_id", "sender", "text", "sanskrit_text", "citations"}

// CSVSerializer exports one row per message
type CSVSerializer struct{}

// Serialize writes sessions as CSV rows
func (s *CSVSerializer) Serialize(sessions []*internal.ConversationSession, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, session := range sessions {
		updated := session.UpdatedAt.Format(time.RFC3339)
		for _, msg := range session.Messages {
			record := []string{
				session.ID,
				session.Title,
				string(session.Language),
				updated,
				msg.ID,
				string(msg.Sender),
				msg.Text,
				msg.SanskritText,
				formatCitations(msg.Citations),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// Extension returns the file extension for this format
func (s *CSVSerializer) Extension() string {
	return "csv"
}

// MIMEType returns the content type for this format
func (s *CSVSerializer) MIMEType() string {
	return "text/csv"
}

func formatCitations(citations []internal.Citation) string {
	parts := make([]string, 0, len(citations))
	for _, c := range citations {
		parts = append(parts, strings.TrimSpace(c.Source+" "+c.Reference))
	}
	return strings.Join(parts, "; ")
}

