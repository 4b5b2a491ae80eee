package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/convo-search/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckDetails bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the archive can be read and searched",
	Long: `Check the health of convo-search by verifying:
  • Configuration
  • Archive location and format
  • Session data accessibility and validity
  • A full search pass over the archive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("🔍 Conversation Archive Health Check"))
		fmt.Fprintln(out)

		// Step 1: Configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Checking configuration..."))
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Invalid configuration:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Configuration valid"))
		if healthcheckDetails {
			fmt.Fprintf(out, "   Config: %s\n", configPath)
			fmt.Fprintf(out, "   Debounce: %s\n", cfg.Debounce)
			fmt.Fprintf(out, "   Output directory: %s\n", cfg.OutputDir)
		}
		fmt.Fprintln(out)

		// Step 2: Archive location
		fmt.Fprintln(out, infoStyle.Render("Step 2: Locating archive..."))
		info, err := os.Stat(cfg.ArchivePath)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Archive not found:"), cfg.ArchivePath)
			return fmt.Errorf("health check failed: %w", err)
		}
		kind := "file archive"
		if !info.IsDir() {
			if !sqliteExtensions[strings.ToLower(filepath.Ext(cfg.ArchivePath))] {
				fmt.Fprintln(out, errorStyle.Render("❌ Archive is neither a directory nor a SQLite database"))
				return fmt.Errorf("health check failed: unsupported archive %s", cfg.ArchivePath)
			}
			kind = "SQLite archive"
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %s", kind)))
		if healthcheckDetails {
			fmt.Fprintf(out, "   Path: %s\n", cfg.ArchivePath)
		}
		fmt.Fprintln(out)

		// Step 3: Load sessions
		fmt.Fprintln(out, infoStyle.Render("Step 3: Loading sessions..."))
		store, closeStore, err := openStore(cfg.ArchivePath)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to open archive:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		defer closeStore()

		sessions, err := store.Sessions()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to load sessions:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		invalid := reportInvalidSessions(out, sessions)
		if len(sessions) > 0 {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d session(s)", len(sessions))))
		} else {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No sessions found"))
		}
		fmt.Fprintln(out)

		// Step 4: Search pass
		fmt.Fprintln(out, infoStyle.Render("Step 4: Running a search pass..."))
		results, err := internal.NewEngine(store).Search(context.Background(), internal.DefaultFilters())
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Search failed:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Search returned %d result(s)", len(results))))
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		if invalid > 0 {
			fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  %d invalid session(s) will be skipped by search", invalid)))
			return nil
		}
		fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Sessions: %d searchable", len(results))))
		return nil
	},
}

func reportInvalidSessions(out io.Writer, sessions []*internal.ConversationSession) int {
	invalid := 0
	for _, session := range sessions {
		if err := internal.ValidateSession(session); err != nil {
			invalid++
			if healthcheckDetails {
				fmt.Fprintf(out, "   Invalid session: %v\n", err)
			}
		}
	}
	return invalid
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckDetails, "details", false, "Show detailed diagnostic information")
}
