package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/iksnae/convo-search/internal"
)

const pdfFontFamily = "body"

// PDFSerializer exports sessions as a PDF document, one session per page.
// Without FontPath the core Helvetica font is used, which only covers cp1252
// (Latin) text; Devanagari and other scripts need a UTF-8 TrueType font.
type PDFSerializer struct {
	FontPath string
}

// Serialize writes sessions as PDF
func (s *PDFSerializer) Serialize(sessions []*internal.ConversationSession, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if s.FontPath != "" {
		font, err := os.ReadFile(s.FontPath)
		if err != nil {
			return fmt.Errorf("failed to read pdf font: %w", err)
		}
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8FontFromBytes(pdfFontFamily, style, font)
		}
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("failed to load pdf font %s: %w", s.FontPath, err)
		}
		family = pdfFontFamily
		tr = func(text string) string { return text }
	}

	if len(sessions) == 0 {
		pdf.AddPage()
		pdf.SetFont(family, "I", 11)
		pdf.Cell(0, 8, "No conversations")
	}

	for _, session := range sessions {
		pdf.AddPage()

		pdf.SetFont(family, "B", 16)
		pdf.MultiCell(0, 8, tr(session.Title), "", "L", false)

		pdf.SetFont(family, "", 9)
		meta := fmt.Sprintf("Language: %s   Updated: %s   Messages: %d",
			session.Language, session.UpdatedAt.Format(time.RFC3339), session.Metadata.MessageCount)
		if len(session.Metadata.Topics) > 0 {
			meta += "   Topics: " + strings.Join(session.Metadata.Topics, ", ")
		}
		pdf.MultiCell(0, 5, tr(meta), "", "L", false)
		pdf.Ln(4)

		for _, msg := range session.Messages {
			pdf.SetFont(family, "B", 11)
			pdf.MultiCell(0, 6, tr(senderLabel(msg.Sender)), "", "L", false)

			pdf.SetFont(family, "", 11)
			pdf.MultiCell(0, 6, tr(msg.Text), "", "L", false)

			if msg.SanskritText != "" {
				pdf.SetFont(family, "I", 10)
				pdf.MultiCell(0, 5, tr(msg.SanskritText), "", "L", false)
			}
			for _, c := range msg.Citations {
				pdf.SetFont(family, "", 9)
				pdf.MultiCell(0, 5, tr(fmt.Sprintf("- %s %s", c.Source, c.Reference)), "", "L", false)
			}
			pdf.Ln(3)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// Extension returns the file extension for this format
func (s *PDFSerializer) Extension() string {
	return "pdf"
}

// MIMEType returns the content type for this format
func (s *PDFSerializer) MIMEType() string {
	return "application/pdf"
}
