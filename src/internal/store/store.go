// Package store loads bibliography entries from BibTeX files on disk.
package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"titlematch/src/internal/schema"
)

// BibExt is the extension of files picked up when loading a directory.
const BibExt = ".bib"

// Loader returns the entries of a bibliography source in source order.
type Loader interface {
	Load(path string) ([]schema.BibEntry, error)
}

// BibTeX loads a single .bib file, or every .bib file below a directory in
// lexical path order. Entries are read fresh on every call.
type BibTeX struct{}

var _ Loader = BibTeX{}

// Load implements Loader. Malformed input yields a *schema.ParseError.
func (BibTeX) Load(path string) ([]schema.BibEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &schema.ParseError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return LoadFile(path)
	}
	files, err := bibFiles(path)
	if err != nil {
		return nil, &schema.ParseError{Path: path, Err: err}
	}
	var entries []schema.BibEntry
	for _, f := range files {
		es, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		entries = append(entries, es...)
	}
	return entries, nil
}

// LoadFile parses one BibTeX file.
func LoadFile(path string) ([]schema.BibEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &schema.ParseError{Path: path, Err: err}
	}
	src := string(b)
	entries, err := ParseBib(src)
	if err != nil {
		pe := &schema.ParseError{Path: path, Err: err}
		var se *syntaxError
		if errors.As(err, &se) {
			pe.Line = lineAt(src, se.off)
		}
		return nil, pe
	}
	return entries, nil
}

// bibFiles lists .bib files under dir, sorted for a deterministic entry order.
func bibFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), BibExt) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
