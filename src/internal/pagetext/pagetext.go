// Package pagetext reads the first page of a document as text.
package pagetext

import (
	"path/filepath"
	"strings"
)

// Extractor returns the text of a document's first page. Failures are
// reported as *schema.ExtractionError.
type Extractor interface {
	FirstPageText(path string) (string, error)
}

// Lines splits page text into lines, dropping a trailing carriage return
// from each. A final newline terminates the last line rather than opening an
// empty one. Empty text yields no lines.
func Lines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// IsPDF reports whether path names a PDF by extension.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Auto dispatches to PDF or Text by file extension.
type Auto struct {
	PDF  Extractor
	Text Extractor
}

// NewAuto returns an Auto using the default PDF and Text extractors.
func NewAuto() Auto { return Auto{PDF: PDF{}, Text: Text{}} }

func (a Auto) FirstPageText(path string) (string, error) {
	if IsPDF(path) {
		return a.PDF.FirstPageText(path)
	}
	return a.Text.FirstPageText(path)
}
