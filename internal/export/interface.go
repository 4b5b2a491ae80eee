package export

import (
	"fmt"
	"io"

	"github.com/iksnae/convo-search/internal"
)

// Serializer defines the interface for all export formats
type Serializer interface {
	Serialize(sessions []*internal.ConversationSession, w io.Writer) error
	Extension() string
	MIMEType() string
}

// NewSerializer creates a serializer for format
func NewSerializer(format internal.ExportFormat) (Serializer, error) {
	switch format {
	case internal.FormatText:
		return &TextSerializer{}, nil
	case internal.FormatJSON:
		return &JSONSerializer{}, nil
	case internal.FormatCSV:
		return &CSVSerializer{}, nil
	case internal.FormatMarkdown:
		return &MarkdownSerializer{}, nil
	case internal.FormatPDF:
		return &PDFSerializer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: txt, json, csv, markdown, pdf)", internal.ErrUnsupportedFormat, format)
	}
}
