// Package window builds overlapping multi-line candidates from page lines.
package window

import "strings"

const (
	DefaultSize = 3
	DefaultMax  = 5
)

// Build joins each run of size consecutive lines with a single space, starting
// at the top of the page, and stops after max windows. Lines are used as-is.
func Build(lines []string, size, max int) []string {
	if size < 1 || max < 1 || len(lines) < size {
		return nil
	}
	n := len(lines) - size + 1
	if n > max {
		n = max
	}
	out := make([]string, 0, n)
	for i := 0; i+size <= len(lines) && len(out) < max; i++ {
		out = append(out, strings.Join(lines[i:i+size], " "))
	}
	return out
}
