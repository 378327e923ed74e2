package sanitize

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanString trims and removes ASCII control characters except tab/newline/carriage
// return up to max runes (if max <= 0, no truncation).
func CleanString(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	// remove controls except \n, \t, \r
	var b strings.Builder
	kept := 0
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
			kept++
			if max > 0 && kept >= max {
				break
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// CleanPageText folds compatibility characters extracted from PDF fonts
// (ligatures such as "ﬁ", full-width forms) with NFKC and drops control
// characters other than tab and newline. Line structure is preserved.
func CleanPageText(s string) string {
	if s == "" {
		return s
	}
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r == '\r':
			b.WriteRune('\n')
		case r < 0x20 || r == 0x7f || r == '�':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanURL returns a validated http/https URL or empty string.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	// remove embedded whitespace
	u.Path = strings.ReplaceAll(u.Path, " ", "%20")
	return u.String()
}
