package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/iksnae/convo-search/internal"
	"github.com/iksnae/convo-search/internal/export"
	"github.com/spf13/cobra"
)

var (
	showLimit int
	showRaw   bool
	showQuery string
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a conversation",
	Long: `Display a conversation rendered as Markdown.

Use --query to highlight a search term in the output and --raw to print the
Markdown source without terminal styling.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		store, closeStore, err := openStore(cfg.ArchivePath)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer closeStore()

		session, err := store.Session(sessionID)
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if session == nil {
			return fmt.Errorf("%w: %s (use 'convo-search list' to see available sessions)", internal.ErrSessionNotFound, sessionID)
		}

		return displaySession(cmd.OutOrStdout(), session, showQuery, showLimit, showRaw)
	},
}

func displaySession(out io.Writer, session *internal.ConversationSession, query string, limit int, raw bool) error {
	view := *session
	if limit > 0 && len(view.Messages) > limit {
		view.Messages = view.Messages[:limit]
	}
	if query != "" {
		view.Messages = emphasizeMatches(view.Messages, query)
	}

	var buf bytes.Buffer
	if err := (&export.MarkdownSerializer{}).WriteSession(&view, &buf); err != nil {
		return fmt.Errorf("failed to render session: %w", err)
	}
	if limit > 0 && len(session.Messages) > limit {
		fmt.Fprintf(&buf, "\n_%d more message(s) not shown_\n", len(session.Messages)-limit)
	}

	if raw {
		_, err := out.Write(buf.Bytes())
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(internal.TerminalWidth(out, 100)-4),
	)
	if err != nil {
		internal.LogWarn("Failed to create markdown renderer, printing raw markdown: %v", err)
		_, err = out.Write(buf.Bytes())
		return err
	}

	rendered, err := renderer.Render(buf.String())
	if err != nil {
		internal.LogWarn("Failed to render markdown, printing raw markdown: %v", err)
		rendered = buf.String()
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// emphasizeMatches wraps query occurrences in inline code so they stand out when rendered
func emphasizeMatches(messages []internal.Message, query string) []internal.Message {
	mark := func(s string) string { return "`" + s + "`" }
	out := make([]internal.Message, len(messages))
	for i, msg := range messages {
		msg.Text = internal.HighlightText(msg.Text, query).Render(mark)
		out[i] = msg
	}
	return out
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Show at most this many messages (0 for all)")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print Markdown without terminal rendering")
	showCmd.Flags().StringVarP(&showQuery, "query", "q", "", "Highlight this term")
}
