package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/convo-search/internal"
)

// TextSerializer exports sessions as plain text transcripts
type TextSerializer struct{}

// Serialize writes a plain text transcript per session
func (s *TextSerializer) Serialize(sessions []*internal.ConversationSession, w io.Writer) error {
	for i, session := range sessions {
		if i > 0 {
			if _, err := fmt.Fprintf(w, "\n%s\n\n", strings.Repeat("=", 60)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\nLanguage: %s\nUpdated: %s\nMessages: %d\n",
			session.Title, session.Language, session.UpdatedAt.Format(time.RFC3339), session.Metadata.MessageCount); err != nil {
			return err
		}
		if len(session.Metadata.Topics) > 0 {
			_, _ = fmt.Fprintf(w, "Topics: %s\n", strings.Join(session.Metadata.Topics, ", "))
		}
		_, _ = fmt.Fprintln(w)

		for _, msg := range session.Messages {
			if _, err := fmt.Fprintf(w, "[%s] %s\n", senderLabel(msg.Sender), msg.Text); err != nil {
				return err
			}
			if msg.SanskritText != "" {
				_, _ = fmt.Fprintf(w, "    %s\n", msg.SanskritText)
			}
			for _, c := range msg.Citations {
				_, _ = fmt.Fprintf(w, "    - %s %s\n", c.Source, c.Reference)
			}
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (s *TextSerializer) Extension() string {
	return "txt"
}

// MIMEType returns the content type for this format
func (s *TextSerializer) MIMEType() string {
	return "text/plain"
}

func senderLabel(sender internal.Sender) string {
	if sender == internal.SenderAssistant {
		return "Assistant"
	}
	return "You"
}
