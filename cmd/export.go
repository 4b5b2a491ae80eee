package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/convo-search/internal"
	"github.com/iksnae/convo-search/internal/export"
	"github.com/spf13/cobra"
)

var (
	format           string
	outputDir        string
	sessionIDs       []string
	exportQuery      string
	exportLanguage   string
	exportDateRange  string
	exportTopics     []string
	exportMinMessage int
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export conversations to a file",
	Long: `Export conversations to txt, json, csv, markdown or pdf.

Select conversations by ID with --id, or by search with --query and the
filter flags. Without either, every conversation in the archive is exported.
Matches are written in relevance order to a single file named
conversations-YYYY-MM-DD.<ext> in the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName := format
		if formatName == "" {
			formatName = cfg.DefaultFormat
		}
		exportFormat, err := internal.ParseExportFormat(formatName)
		if err != nil {
			return err
		}
		dir := outputDir
		if dir == "" {
			dir = cfg.OutputDir
		}

		store, closeStore, err := openStore(cfg.ArchivePath)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer closeStore()

		ctx := context.Background()
		ids := append([]string(nil), sessionIDs...)
		if len(ids) == 0 {
			filters, err := loadFilters(exportQuery, exportLanguage, exportDateRange, exportTopics, exportMinMessage)
			if err != nil {
				return err
			}
			results, err := internal.NewEngine(store).Search(ctx, filters)
			if err != nil {
				return err
			}
			for _, result := range results {
				ids = append(ids, result.Session.ID)
			}
		}

		saver := export.NewFileSaver(dir)
		bulk := internal.NewBulkExporter(internal.NewSelection(), export.NewSessionExporter(store, nil).WithPDFFont(cfg.PDFFont), saver)

		var payload *internal.ExportPayload
		err = internal.ShowProgress(ctx, fmt.Sprintf("Exporting %d conversation(s) as %s", len(ids), exportFormat), func() error {
			var exportErr error
			payload, exportErr = bulk.Export(ctx, ids, exportFormat)
			return exportErr
		})
		if err != nil {
			return err
		}

		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Export complete: %d conversation(s) written to %s", len(ids), saver.Path(payload)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "", "Export format: txt, json, csv, markdown, pdf (default from config)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory (default from config)")
	exportCmd.Flags().StringSliceVar(&sessionIDs, "id", nil, "Export only these session IDs (repeatable)")
	exportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "Export conversations matching this query")
	exportCmd.Flags().StringVar(&exportLanguage, "language", "all", "Language filter (all, en, hi)")
	exportCmd.Flags().StringVar(&exportDateRange, "date-range", "all", "Date range (all, today, week, month, year)")
	exportCmd.Flags().StringSliceVar(&exportTopics, "topic", nil, "Topic filter (repeatable)")
	exportCmd.Flags().IntVar(&exportMinMessage, "min-messages", 0, "Minimum number of messages")
}
