package extract

import (
	"context"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/rockyxcoded/Example-PDF-vector-search/types"
)

// TextExtractor turns a source file into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// PDFExtractor validates a PDF with pdfcpu and pulls page text out of it.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the plain text of every page, pages separated by a blank
// line. A malformed or unreadable file yields an ExtractionError.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := pdfcpu.ValidateFile(path, pdfcpu.LoadConfiguration()); err != nil {
		return "", &types.ExtractionError{Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &types.ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", &types.ExtractionError{Path: path, Err: err}
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", &types.ExtractionError{Path: path, Err: err}
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &types.ExtractionError{Path: path, Err: err}
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}
