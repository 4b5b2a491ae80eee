package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/convo-search/internal"
	"github.com/iksnae/convo-search/internal/export"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import conversations into the archive",
	Long: `Import conversations from a JSON file (a session object or an array of
sessions, as written by 'convo-search export --format json'). Use - to read
from stdin.

Missing ids are generated, titles and senders are normalized, and sessions
already in the archive are replaced by the imported copy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if sqliteExtensions[strings.ToLower(filepath.Ext(cfg.ArchivePath))] {
			return fmt.Errorf("cannot import into %s: SQLite archives are read-only", cfg.ArchivePath)
		}

		var in io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()
			in = f
		}

		imported, err := export.ImportJSON(in)
		if err != nil {
			return err
		}

		sessions := internal.NewNormalizer().NormalizeAllSessions(imported)
		sessions = internal.NewDeduplicator().Deduplicate(sessions)
		if skipped := len(imported) - len(sessions); skipped > 0 {
			internal.LogInfo("Dropped %d invalid or duplicate session(s)", skipped)
		}

		saved, err := internal.NewFileStore(cfg.ArchivePath).SaveSessions(sessions)
		if err != nil {
			return fmt.Errorf("failed to save archive: %w", err)
		}

		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Imported %d conversation(s) into %s", saved, cfg.ArchivePath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
