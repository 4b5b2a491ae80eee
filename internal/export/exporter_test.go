package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/convo-search/internal"
	"github.com/iksnae/convo-search/testutil"
)

func fixedExportClock() time.Time {
	return time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)
}

func TestSessionExporter_Export(t *testing.T) {
	store := internal.NewMemoryStore(
		internal.CreateTestSessionWithCount("first", 1),
		internal.CreateTestSessionWithCount("second", 1),
	)
	exporter := NewSessionExporter(store, fixedExportClock)

	tests := []struct {
		name         string
		ids          []string
		format       internal.ExportFormat
		wantFilename string
		wantMIME     string
		wantErr      error
	}{
		{name: "markdown", ids: []string{"second", "first"}, format: internal.FormatMarkdown, wantFilename: "conversations-2024-03-09.md", wantMIME: "text/markdown"},
		{name: "csv", ids: []string{"first"}, format: internal.FormatCSV, wantFilename: "conversations-2024-03-09.csv", wantMIME: "text/csv"},
		{name: "missing session", ids: []string{"first", "ghost"}, format: internal.FormatJSON, wantErr: internal.ErrSessionNotFound},
		{name: "unsupported format", ids: []string{"first"}, format: "docx", wantErr: internal.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := exporter.Export(context.Background(), tt.ids, tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Export() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if payload.Filename != tt.wantFilename {
				t.Errorf("Filename = %s, want %s", payload.Filename, tt.wantFilename)
			}
			if payload.MIMEType != tt.wantMIME {
				t.Errorf("MIMEType = %s, want %s", payload.MIMEType, tt.wantMIME)
			}
		})
	}
}

func TestSessionExporter_PreservesOrder(t *testing.T) {
	store := internal.NewMemoryStore(
		internal.CreateTestSessionWithCount("first", 1),
		internal.CreateTestSessionWithCount("second", 1),
	)
	payload, err := NewSessionExporter(store, fixedExportClock).Export(context.Background(), []string{"second", "first"}, internal.FormatText)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	content := string(payload.Content)
	if strings.Index(content, "Session second") > strings.Index(content, "Session first") {
		t.Errorf("Export() should keep the requested order:\n%s", content)
	}
}

func TestFileSaver_Download(t *testing.T) {
	dir := filepath.Join(testutil.CreateTempDir(t), "exports")
	saver := NewFileSaver(dir)
	payload := &internal.ExportPayload{Content: []byte("hello"), Filename: "../conversations-2024-03-09.txt", MIMEType: "text/plain"}

	if err := saver.Download(context.Background(), payload); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	path := saver.Path(payload)
	if filepath.Dir(path) != dir {
		t.Errorf("Path() = %s, should stay inside %s", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hello" {
		t.Errorf("saved content = %q, %v", data, err)
	}
}

func TestFileSaver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewFileSaver(testutil.CreateTempDir(t)).Download(ctx, &internal.ExportPayload{Filename: "x.txt"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Download() error = %v, want context.Canceled", err)
	}
}

func TestSessionExporter_PDFFont(t *testing.T) {
	store := internal.NewMemoryStore(internal.CreateTestSession("first"))
	missing := filepath.Join(testutil.CreateTempDir(t), "missing.ttf")

	if _, err := NewSessionExporter(store, fixedExportClock).Export(context.Background(), []string{"first"}, internal.FormatPDF); err != nil {
		t.Fatalf("Export() without font error = %v", err)
	}

	_, err := NewSessionExporter(store, fixedExportClock).WithPDFFont(missing).Export(context.Background(), []string{"first"}, internal.FormatPDF)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Export() with missing font error = %v, want os.ErrNotExist", err)
	}
}
