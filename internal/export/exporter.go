package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iksnae/convo-search/internal"
)

// FilenamePrefix starts every default export filename
const FilenamePrefix = "conversations"

// SessionExporter resolves session ids through a store and serializes them.
// It implements internal.Exporter.
type SessionExporter struct {
	store   internal.ConversationStore
	now     func() time.Time
	pdfFont string
}

// NewSessionExporter creates a SessionExporter. A nil clock defaults to time.Now.
func NewSessionExporter(store internal.ConversationStore, now func() time.Time) *SessionExporter {
	if now == nil {
		now = time.Now
	}
	return &SessionExporter{store: store, now: now}
}

// WithPDFFont sets the UTF-8 TrueType font used for pdf exports
func (e *SessionExporter) WithPDFFont(path string) *SessionExporter {
	e.pdfFont = path
	return e
}

// Export serializes the sessions with ids, in the order given
func (e *SessionExporter) Export(ctx context.Context, ids []string, format internal.ExportFormat) (*internal.ExportPayload, error) {
	serializer, err := NewSerializer(format)
	if err != nil {
		return nil, err
	}
	if pdf, ok := serializer.(*PDFSerializer); ok {
		pdf.FontPath = e.pdfFont
	}

	sessions := make([]*internal.ConversationSession, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		session, err := e.store.Session(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load session %s: %w", id, err)
		}
		if session == nil {
			return nil, fmt.Errorf("%w: %s", internal.ErrSessionNotFound, id)
		}
		sessions = append(sessions, session)
	}

	var buf bytes.Buffer
	if err := serializer.Serialize(sessions, &buf); err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", format, err)
	}

	return &internal.ExportPayload{
		Content:  buf.Bytes(),
		Filename: DefaultFilename(serializer.Extension(), e.now()),
		MIMEType: serializer.MIMEType(),
	}, nil
}

// DefaultFilename embeds the date as YYYY-MM-DD
func DefaultFilename(extension string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", FilenamePrefix, now.Format("2006-01-02"), extension)
}

// FileSaver is a download trigger that writes payloads into a directory
type FileSaver struct {
	Dir string
}

// NewFileSaver creates a FileSaver for dir
func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{Dir: dir}
}

// Download writes the payload to Dir/Filename
func (s *FileSaver) Download(ctx context.Context, payload *internal.ExportPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := s.Path(payload)
	if err := os.WriteFile(path, payload.Content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	internal.LogDebug("Saved %s (%s, %d bytes)", path, payload.MIMEType, len(payload.Content))
	return nil
}

// Path returns where a payload is saved
func (s *FileSaver) Path(payload *internal.ExportPayload) string {
	return filepath.Join(s.Dir, filepath.Base(payload.Filename))
}
