package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel values reported when no title line or no bibliography match exists.
const (
	UnknownTitle  = "Unknown title"
	UnknownAuthor = "Unknown author"
)

// BibEntry is a single record loaded from a bibliography file. Field names are
// lower-cased; values are kept as written (brace markup included).
type BibEntry struct {
	Type   string            `yaml:"type" json:"type"`
	Key    string            `yaml:"key" json:"key"`
	Fields map[string]string `yaml:"fields" json:"fields"`
}

// Field returns the named field and whether the entry carries it at all.
func (e BibEntry) Field(name string) (string, bool) {
	if e.Fields == nil {
		return "", false
	}
	v, ok := e.Fields[strings.ToLower(name)]
	return v, ok
}

// Title returns the raw title field, or "" when absent.
func (e BibEntry) Title() string {
	v, _ := e.Field("title")
	return v
}

func (e BibEntry) Author() (string, bool) { return e.Field("author") }

func (e BibEntry) Editor() (string, bool) { return e.Field("editor") }

// MatchResult pairs a canonical title with the first author of the matched entry.
type MatchResult struct {
	Title  string `yaml:"title" json:"title"`
	Author string `yaml:"author" json:"author"`
}

// NoMatch is the result reported when no title was found or nothing matched.
func NoMatch() MatchResult {
	return MatchResult{Title: UnknownTitle, Author: UnknownAuthor}
}

// IsNoMatch reports whether m is the sentinel pair.
func (m MatchResult) IsNoMatch() bool {
	return m.Title == UnknownTitle && m.Author == UnknownAuthor
}

var (
	ErrNoPages       = errors.New("document has no pages")
	ErrEmptyDocument = errors.New("document is empty")
)

// ExtractionError reports a document whose first page could not be read.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ParseError reports a malformed bibliography file. Line is 1-based; 0 when unknown.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
