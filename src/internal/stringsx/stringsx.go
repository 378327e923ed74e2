package stringsx

import "strings"

// FirstNonEmpty returns the first string in vals that is non-empty when trimmed.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

var braceStripper = strings.NewReplacer("{", "", "}", "")

// RemoveBraces drops BibTeX grouping braces: "{Deep} Learning" -> "Deep Learning".
func RemoveBraces(s string) string { return braceStripper.Replace(s) }

// ContainsFold reports whether sub is within s, ignoring case.
func ContainsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
