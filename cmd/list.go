package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/convo-search/internal"
	"github.com/spf13/cobra"
)

var (
	listLanguage string
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	topicStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived conversations",
	Long:  `List every conversation in the archive, most recently stored last.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cfg.ArchivePath)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer closeStore()

		lang, err := internal.ParseLanguage(listLanguage)
		if err != nil {
			return err
		}

		sessions, err := store.Sessions()
		if err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}
		if lang != internal.LanguageAll {
			filters := internal.DefaultFilters()
			filters.Language = lang
			sessions = internal.FilterSessions(sessions, filters, time.Now())
		}

		displaySessions(cmd.OutOrStdout(), sessions, time.Now())
		return nil
	},
}

func displaySessions(out io.Writer, sessions []*internal.ConversationSession, now time.Time) {
	if len(sessions) == 0 {
		fmt.Fprintln(out, headerStyle.Render("📋 No conversations found"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 Found %d conversation(s)", len(sessions))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Lang")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Updated")+"\t"+titleStyle.Render("Topics")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 110))

	for _, session := range sessions {
		topics := dateStyle.Render("-")
		if len(session.Metadata.Topics) > 0 {
			topics = topicStyle.Render(truncate(strings.Join(session.Metadata.Topics, ", "), 30))
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			idStyle.Render(shortID(session.ID)),
			nameStyle.Render(truncate(session.Title, 50)),
			string(session.Language),
			countStyle.Render(strconv.Itoa(session.Metadata.MessageCount)),
			dateStyle.Render(formatUpdated(session.UpdatedAt, now)),
			topics)
	}

	_ = w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, idStyle.Render("💡 Tip: Use the full ID (e.g., ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(sessions[0].ID)+
		idStyle.Render(") with `convo-search show <id>`"))
}

// formatUpdated renders a timestamp relative to now
func formatUpdated(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("2006-01-02")
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to max runes
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listLanguage, "language", "all", "Only list conversations in this language (all, en, hi)")
}
