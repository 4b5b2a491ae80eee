package internal

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type stubExporter struct {
	err     error
	gotIDs  []string
	gotFmt  ExportFormat
	calls   int
	payload *ExportPayload
}

func (s *stubExporter) Export(ctx context.Context, ids []string, format ExportFormat) (*ExportPayload, error) {
	s.calls++
	s.gotIDs = append([]string(nil), ids...)
	s.gotFmt = format
	if s.err != nil {
		return nil, s.err
	}
	if s.payload != nil {
		return s.payload, nil
	}
	return &ExportPayload{Content: []byte("content"), Filename: "conversations-2024-06-01." + string(format), MIMEType: "text/plain"}, nil
}

type stubTrigger struct {
	err      error
	payloads []*ExportPayload
}

func (s *stubTrigger) Download(ctx context.Context, payload *ExportPayload) error {
	if s.err != nil {
		return s.err
	}
	s.payloads = append(s.payloads, payload)
	return nil
}

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    ExportFormat
		wantErr bool
	}{
		{input: "txt", want: FormatText},
		{input: "JSON", want: FormatJSON},
		{input: "csv", want: FormatCSV},
		{input: "md", want: FormatMarkdown},
		{input: "markdown", want: FormatMarkdown},
		{input: "pdf", want: FormatPDF},
		{input: "xml", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseExportFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExportFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ParseExportFormat(%q) error = %v, want ErrUnsupportedFormat", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseExportFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBulkExporter_ExportSelectedClearsOnSuccess(t *testing.T) {
	selection := NewSelection()
	selection.SelectAll([]string{"s2", "s1"})
	exporter := &stubExporter{}
	trigger := &stubTrigger{}

	payload, err := NewBulkExporter(selection, exporter, trigger).ExportSelected(context.Background(), FormatCSV)
	if err != nil {
		t.Fatalf("ExportSelected() error = %v", err)
	}
	if payload.Filename != "conversations-2024-06-01.csv" {
		t.Errorf("ExportSelected() filename = %q", payload.Filename)
	}
	if !reflect.DeepEqual(exporter.gotIDs, []string{"s1", "s2"}) {
		t.Errorf("exporter received ids %v, want [s1 s2]", exporter.gotIDs)
	}
	if exporter.gotFmt != FormatCSV {
		t.Errorf("exporter received format %v, want csv", exporter.gotFmt)
	}
	if len(trigger.payloads) != 1 {
		t.Errorf("download triggered %d times, want 1", len(trigger.payloads))
	}
	if selection.Len() != 0 {
		t.Errorf("selection has %d ids after successful export, want 0", selection.Len())
	}
}

func TestBulkExporter_FailurePreservesSelection(t *testing.T) {
	tests := []struct {
		name     string
		exporter *stubExporter
		trigger  *stubTrigger
	}{
		{
			name:     "exporter failure",
			exporter: &stubExporter{err: errors.New("serializer broke")},
			trigger:  &stubTrigger{},
		},
		{
			name:     "download failure",
			exporter: &stubExporter{},
			trigger:  &stubTrigger{err: errors.New("disk full")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selection := NewSelection()
			selection.SelectAll([]string{"a", "b", "c"})

			_, err := NewBulkExporter(selection, tt.exporter, tt.trigger).ExportSelected(context.Background(), FormatJSON)
			var exportErr *ExportError
			if !errors.As(err, &exportErr) {
				t.Fatalf("ExportSelected() error = %v, want *ExportError", err)
			}
			if exportErr.Format != "json" {
				t.Errorf("ExportError.Format = %q, want json", exportErr.Format)
			}
			if got := selection.Selected(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
				t.Errorf("selection after failure = %v, want unchanged", got)
			}
		})
	}
}

func TestBulkExporter_EmptySelection(t *testing.T) {
	exporter := &stubExporter{}
	_, err := NewBulkExporter(NewSelection(), exporter, nil).ExportSelected(context.Background(), FormatText)
	if !errors.Is(err, ErrEmptySelection) {
		t.Errorf("ExportSelected() error = %v, want ErrEmptySelection", err)
	}
	if exporter.calls != 0 {
		t.Errorf("exporter called %d times for an empty selection", exporter.calls)
	}
}

func TestBulkExporter_ExportLeavesSelectionAlone(t *testing.T) {
	selection := NewSelection()
	selection.Toggle("kept")

	_, err := NewBulkExporter(selection, &stubExporter{}, nil).Export(context.Background(), []string{"other"}, FormatPDF)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !selection.Contains("kept") {
		t.Error("Export() with explicit ids should not clear the selection")
	}
}
