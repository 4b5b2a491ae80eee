package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/convo-search/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	archivePath string
	configPath  string
	logLevel    string
	cfg         = internal.DefaultConfig()
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "convo-search",
	Short: "Search, rank and export archived conversations",
	Long: `A CLI tool to search an archive of conversations and export them.

Conversations are ranked by relevance to your query: title hits, assistant
and user messages, Sanskrit text and citations all contribute, with small
bonuses for recent and long conversations.

Features:
  • Full-text search with language, date, topic and length filters
  • Interactive browsing with debounced search and multi-select
  • Export to text, JSON, CSV, Markdown or PDF
  • Import conversations from JSON into a local archive

Quick Start:
  convo-search list                          # List archived conversations
  convo-search search dharma                 # Ranked search
  convo-search browse                        # Interactive search and export
  convo-search show <session-id>             # Read a conversation
  convo-search export --query karma -f pdf   # Export matching conversations`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if archivePath != "" {
			loaded.ArchivePath = archivePath
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		cfg = loaded

		level, err := internal.ParseLogLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		internal.SetLogLevel(level)
		if verbose {
			internal.SetVerbose(true)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".convo-search.yaml")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&archivePath, "archive", "", "Archive location (directory or SQLite database file)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (error, warn, info, debug)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
