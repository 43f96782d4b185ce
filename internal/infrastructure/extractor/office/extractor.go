package office

import (
	"context"
	"errors"
	"strings"

	"github.com/akozyrev/resume-insight/internal/core/domain"
	"github.com/akozyrev/resume-insight/internal/core/ports"
)

const (
	mimePDF  = "application/pdf"
	mimeDoc  = "application/msword"
	docxPart = "wordprocessingml"
)

// Extractor converts uploaded resume bytes into plain text. Dispatch is by
// declared media type: the PDF family goes through page-based extraction, the
// word-processing family (OOXML zip or legacy OLE binary) through raw-text
// scraping that ignores formatting.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, data []byte, mimeType string) (ports.ExtractedText, error) {
	if err := ctx.Err(); err != nil {
		return ports.ExtractedText{}, err
	}

	switch {
	case mimeType == mimePDF:
		text, pages, err := extractPDF(data)
		if err != nil {
			return ports.ExtractedText{}, domain.WrapError(domain.ErrExtractionFailed, "extract pdf", err)
		}
		return ports.ExtractedText{Text: text, Pages: pages}, nil

	case strings.Contains(mimeType, docxPart):
		text, err := extractDocx(data)
		if err != nil {
			return ports.ExtractedText{}, domain.WrapError(domain.ErrExtractionFailed, "extract docx", err)
		}
		return ports.ExtractedText{Text: text, Pages: 1}, nil

	case mimeType == mimeDoc:
		text, err := extractLegacyDoc(data)
		if err != nil {
			return ports.ExtractedText{}, domain.WrapError(domain.ErrExtractionFailed, "extract doc", err)
		}
		return ports.ExtractedText{Text: text, Pages: 1}, nil

	default:
		return ports.ExtractedText{}, domain.WrapError(
			domain.ErrUnsupportedMediaType,
			"extract text",
			errors.New("media type "+mimeType),
		)
	}
}
