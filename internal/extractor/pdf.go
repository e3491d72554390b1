// Package extractor turns PDF byte streams into candidate text passages.
package extractor

import (
	"bytes"
	"log"
	"strings"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/cloo-solutions/docvault/internal/domain"
)

// PDFExtractor extracts paragraph candidates from PDF documents.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDFExtractor instance.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Paragraphs extracts the text of every page and splits it into trimmed
// paragraphs longer than domain.MinPassageChars, in document order.
// A page with no extractable text contributes nothing; only a byte stream
// that is not a well-formed PDF fails the extraction.
func (e *PDFExtractor) Paragraphs(data []byte) ([]string, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeExtraction, "file is not a well-formed PDF", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeExtraction, "file is not a well-formed PDF", err)
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		pages = append(pages, extractPage(reader, i))
	}

	return splitParagraphs(strings.Join(pages, "\n\n")), nil
}

// extractPage returns the text of one page, or an empty string when the page
// cannot be read. Per-page failures never abort the document.
func extractPage(reader *model.PdfReader, pageNum int) string {
	page, err := reader.GetPage(pageNum)
	if err != nil {
		log.Printf("extractor: skipping unreadable page %d: %v", pageNum, err)
		return ""
	}

	ex, err := extractor.New(page)
	if err != nil {
		log.Printf("extractor: skipping page %d: %v", pageNum, err)
		return ""
	}

	text, err := ex.ExtractText()
	if err != nil {
		log.Printf("extractor: skipping page %d text: %v", pageNum, err)
		return ""
	}
	return text
}

// splitParagraphs splits on double-newline boundaries, trims whitespace and
// drops fragments at or below the minimum passage length.
func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if len(trimmed) > domain.MinPassageChars {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}
