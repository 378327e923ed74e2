// Package render writes command results as aligned tables, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by the --format flag.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// CheckFormat rejects unknown output formats.
func CheckFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
}

// Encode writes v as JSON or YAML. Table output is left to the caller.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return CheckFormat(format)
}

// Table writes rows under headers with columns padded to the widest cell,
// measured in runes.
func Table(w io.Writer, headers []string, rows [][]string) {
	widths := colWidths(headers, rows)
	writeColumns(w, headers, widths)
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	writeColumns(w, sep, widths)
	for _, r := range rows {
		writeColumns(w, r, widths)
	}
}

func colWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, r := range rows {
		for i := range headers {
			if i >= len(r) {
				continue
			}
			if w := utf8.RuneCountInString(r[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func writeColumns(w io.Writer, cols []string, widths []int) {
	for i, width := range widths {
		val := ""
		if i < len(cols) {
			val = cols[i]
		}
		if i == len(widths)-1 {
			_, _ = fmt.Fprint(w, val)
			break
		}
		_, _ = fmt.Fprintf(w, "%-*s  ", width, val)
	}
	_, _ = fmt.Fprint(w, "\n")
}
