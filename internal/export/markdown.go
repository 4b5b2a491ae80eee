package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/convo-search/internal"
)

// MarkdownSerializer exports sessions in Markdown format
type MarkdownSerializer struct{}

// Serialize writes sessions as Markdown
func (s *MarkdownSerializer) Serialize(sessions []*internal.ConversationSession, w io.Writer) error {
	for i, session := range sessions {
		if i > 0 {
			_, _ = fmt.Fprintf(w, "\n")
		}
		if err := writeMarkdownSession(session, w); err != nil {
			return err
		}
	}
	return nil
}

// WriteSession writes a single session as Markdown
func (s *MarkdownSerializer) WriteSession(session *internal.ConversationSession, w io.Writer) error {
	return writeMarkdownSession(session, w)
}

func writeMarkdownSession(session *internal.ConversationSession, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", escapeMarkdown(session.Title)); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "**Language:** %s  \n", session.Language)
	_, _ = fmt.Fprintf(w, "**Updated:** %s  \n", session.UpdatedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", session.Metadata.MessageCount)

	if len(session.Metadata.Topics) > 0 {
		_, _ = fmt.Fprintf(w, "**Topics:** %s\n\n", strings.Join(session.Metadata.Topics, ", "))
	}

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range session.Messages {
		_, _ = fmt.Fprintf(w, "**%s:**\n\n%s\n\n", senderLabel(msg.Sender), escapeMarkdown(msg.Text))

		if msg.SanskritText != "" {
			_, _ = fmt.Fprintf(w, "> %s\n\n", msg.SanskritText)
		}
		for _, c := range msg.Citations {
			_, _ = fmt.Fprintf(w, "- *%s* %s\n", c.Source, c.Reference)
		}
		if len(msg.Citations) > 0 {
			_, _ = fmt.Fprintln(w)
		}

		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes emphasis markers outside code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (s *MarkdownSerializer) Extension() string {
	return "md"
}

// MIMEType returns the content type for this format
func (s *MarkdownSerializer) MIMEType() string {
	return "text/markdown"
}
