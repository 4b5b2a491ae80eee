package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/convo-search/internal"
	"github.com/spf13/cobra"
)

var (
	searchLanguage    string
	searchDateRange   string
	searchTopics      []string
	searchMinMessages int
	searchLimit       int
	searchSnippets    int
)

var (
	matchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("220"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	snippetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			PaddingLeft(6)
)

const snippetContext = 40

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search conversations by relevance",
	Long: `Search the archive and print conversations ranked by relevance.

Title matches weigh the most, followed by assistant messages, citations,
Sanskrit text and user messages. Recent conversations and long ones get a
small bonus. Without a query, filters alone select the conversations.

Examples:
  convo-search search dharma
  convo-search search "karma yoga" --language en --date-range month
  convo-search search --topic meditation --min-messages 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := loadFilters(strings.Join(args, " "), searchLanguage, searchDateRange, searchTopics, searchMinMessages)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore(cfg.ArchivePath)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer closeStore()

		results, err := internal.NewEngine(store).Search(context.Background(), filters)
		if err != nil {
			return err
		}

		limit := searchLimit
		if limit <= 0 {
			limit = cfg.ResultLimit
		}
		displayResults(cmd.OutOrStdout(), results, filters.NormalizedQuery(), limit, searchSnippets)
		return nil
	},
}

func displayResults(out io.Writer, results []internal.SearchResult, query string, limit, snippets int) {
	if len(results) == 0 {
		fmt.Fprintln(out, headerStyle.Render("🔍 No matching conversations"))
		return
	}

	shown := results
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("🔍 %d matching conversation(s)", len(results))))
	fmt.Fprintln(out)

	for i, result := range shown {
		fmt.Fprintf(out, "%3d. %s  %s  %s\n",
			i+1,
			scoreStyle.Render(fmt.Sprintf("%5.1f", result.RelevanceScore)),
			result.HighlightedTitle.Render(markMatch),
			idStyle.Render(result.Session.ID))

		for j, msg := range result.MatchedMessages {
			if j >= snippets {
				break
			}
			text := msg.Text
			if !internal.HighlightText(text, query).Matched() {
				text = msg.SanskritText
			}
			fmt.Fprintln(out, snippetStyle.Render(senderPrefix(msg.Sender)+snippet(text, query)))
		}
	}

	if len(shown) < len(results) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, idStyle.Render(fmt.Sprintf("… %d more (use --limit to show more)", len(results)-len(shown))))
	}
}

// snippet renders a highlighted excerpt around the first match in text
func snippet(text, query string) string {
	text = strings.Join(strings.Fields(text), " ")
	highlighted := internal.HighlightText(text, query)

	start, end := 0, len(text)
	for _, span := range highlighted.Spans {
		if span.Match {
			start = span.Start - snippetContext
			end = span.End + snippetContext
			break
		}
	}
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	excerpt := internal.HighlightText(text[start:end], query).Render(markMatch)
	if start > 0 {
		excerpt = "…" + excerpt
	}
	if end < len(text) {
		excerpt += "…"
	}
	return excerpt
}

func markMatch(s string) string {
	return matchStyle.Render(s)
}

func senderPrefix(sender internal.Sender) string {
	if sender == internal.SenderAssistant {
		return "assistant: "
	}
	return "you: "
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchLanguage, "language", "l", "all", "Language filter (all, en, hi)")
	searchCmd.Flags().StringVarP(&searchDateRange, "date-range", "d", "all", "Date range (all, today, week, month, year)")
	searchCmd.Flags().StringSliceVarP(&searchTopics, "topic", "t", nil, "Topic filter (repeatable)")
	searchCmd.Flags().IntVar(&searchMinMessages, "min-messages", 0, "Minimum number of messages")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum results to show (default from config)")
	searchCmd.Flags().IntVar(&searchSnippets, "snippets", 2, "Matched messages to preview per result")
}
