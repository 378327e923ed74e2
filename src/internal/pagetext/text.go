package pagetext

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"titlematch/src/internal/schema"
)

// maxTextPage bounds how much of a text file is read while looking for the
// end of the first page.
const maxTextPage = 1 << 20

// Text reads a plain-text document. The first page ends at the first form
// feed, or at the end of the file when there is none.
type Text struct{}

// FirstPageText implements Extractor.
func (Text) FirstPageText(path string) (string, error) {
	text, err := readFirstPage(path)
	if err != nil {
		return "", &schema.ExtractionError{Path: path, Err: err}
	}
	return text, nil
}

func readFirstPage(path string) (text string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	b, err := io.ReadAll(io.LimitReader(f, maxTextPage))
	if err != nil {
		return "", errors.Wrap(err, "read text")
	}
	if len(b) == 0 {
		return "", schema.ErrEmptyDocument
	}
	page, _, _ := strings.Cut(string(b), "\f")
	return page, nil
}
