package pagetext

import (
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"titlematch/src/internal/sanitize"
	"titlematch/src/internal/schema"
)

// PDF extracts the text of page 1 of a PDF file, one line per text row.
type PDF struct{}

// FirstPageText implements Extractor.
func (PDF) FirstPageText(path string) (text string, err error) {
	text, err = firstPage(path)
	if err != nil {
		return "", &schema.ExtractionError{Path: path, Err: err}
	}
	return sanitize.CleanPageText(text), nil
}

func firstPage(path string) (text string, err error) {
	// the pdf reader panics on some malformed xref tables and streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("corrupt pdf: %v", r)
		}
	}()
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "open pdf")
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	if r.NumPage() < 1 {
		return "", schema.ErrNoPages
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return "", schema.ErrNoPages
	}
	return joinRows(page.Content().Text), nil
}

// Glyphs whose baselines differ by less than rowTolerance points share a row.
const rowTolerance = 0.5

// joinRows rebuilds the page's text lines from positioned glyphs: a change of
// baseline starts a new line, and a horizontal gap wider than a fifth of the
// font size within a row becomes a space. Glyphs keep content-stream order.
// The reader emits a bare "\n" glyph after every TJ array; those are dropped.
func joinRows(glyphs []pdf.Text) string {
	var b strings.Builder
	var prev pdf.Text
	started := false
	for _, g := range glyphs {
		if g.S == "" || g.S == "\n" {
			continue
		}
		switch {
		case !started:
			started = true
		case math.Abs(g.Y-prev.Y) > rowTolerance:
			b.WriteByte('\n')
		case g.X-(prev.X+prev.W) > 0.2*g.FontSize && g.S != " " && prev.S != " ":
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		prev = g
	}
	return b.String()
}

// MetadataTitle returns the Title entry of the PDF Info dictionary, or ""
// when the document does not carry one.
func MetadataTitle(path string) (string, error) {
	info, err := pdfcpu.InfoFile(path, []string{}, nil)
	if err != nil {
		return "", &schema.ExtractionError{Path: path, Err: err}
	}
	return titleFromInfo(info), nil
}

func titleFromInfo(info []string) string {
	const prefix = "Title:"
	for _, line := range info {
		cleaned := strings.TrimSpace(line)
		if strings.HasPrefix(cleaned, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(cleaned, prefix))
		}
	}
	return ""
}
