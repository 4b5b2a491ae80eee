package internal

import (
	"context"
	"fmt"
	"strings"
)

// ExportFormat is a serialization format understood by the exporter
type ExportFormat string

const (
	FormatText     ExportFormat = "txt"
	FormatJSON     ExportFormat = "json"
	FormatCSV      ExportFormat = "csv"
	FormatMarkdown ExportFormat = "markdown"
	FormatPDF      ExportFormat = "pdf"
)

// ExportFormats lists the supported formats
var ExportFormats = []ExportFormat{FormatText, FormatJSON, FormatCSV, FormatMarkdown, FormatPDF}

// ParseExportFormat parses a format tag, accepting "md" for markdown
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %s (supported: txt, json, csv, markdown, pdf)", ErrUnsupportedFormat, s)
	}
}

// ExportPayload is serialized content ready to be saved
type ExportPayload struct {
	Content  []byte
	Filename string
	MIMEType string
}

// Exporter serializes the sessions with the given ids
type Exporter interface {
	Export(ctx context.Context, ids []string, format ExportFormat) (*ExportPayload, error)
}

// DownloadTrigger persists exported content to the user's environment
type DownloadTrigger interface {
	Download(ctx context.Context, payload *ExportPayload) error
}

// BulkExporter hands a selection to the exporter and download trigger.
// The selection is cleared only after both succeed.
type BulkExporter struct {
	selection *Selection
	exporter  Exporter
	trigger   DownloadTrigger
}

// NewBulkExporter creates a BulkExporter. trigger may be nil when the caller
// saves the returned payload itself.
func NewBulkExporter(selection *Selection, exporter Exporter, trigger DownloadTrigger) *BulkExporter {
	return &BulkExporter{
		selection: selection,
		exporter:  exporter,
		trigger:   trigger,
	}
}

// Export serializes ids in format and triggers the download. It does not touch the selection.
func (b *BulkExporter) Export(ctx context.Context, ids []string, format ExportFormat) (*ExportPayload, error) {
	if len(ids) == 0 {
		return nil, &ExportError{Format: string(format), Err: ErrEmptySelection}
	}
	if b.exporter == nil {
		return nil, &ExportError{Format: string(format), Err: fmt.Errorf("no exporter configured")}
	}

	payload, err := b.exporter.Export(ctx, ids, format)
	if err != nil {
		return nil, &ExportError{Format: string(format), Err: err}
	}
	if payload == nil {
		return nil, &ExportError{Format: string(format), Err: fmt.Errorf("exporter returned no content")}
	}

	if b.trigger != nil {
		if err := b.trigger.Download(ctx, payload); err != nil {
			return nil, &ExportError{Format: string(format), Filename: payload.Filename, Err: err}
		}
	}

	LogInfo("Exported %d session(s) to %s", len(ids), payload.Filename)
	return payload, nil
}

// ExportSelected exports the current selection and clears it on success.
// On failure the selection is left exactly as it was so the user can retry.
func (b *BulkExporter) ExportSelected(ctx context.Context, format ExportFormat) (*ExportPayload, error) {
	ids := b.selection.Selected()
	payload, err := b.Export(ctx, ids, format)
	if err != nil {
		return nil, err
	}
	b.selection.Clear()
	return payload, nil
}
