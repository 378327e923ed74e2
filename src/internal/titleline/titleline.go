// Package titleline guesses a document title from the lines of its first page.
//
// A guess is the first non-blank line that trips none of the exclusion rules
// of a RuleSet. Rules are plain data so each can be tested on its own and new
// banner patterns can be added without touching the scan.
package titleline

import (
	"fmt"
	"regexp"
	"strings"

	"titlematch/src/internal/schema"
)

// Rule excludes a line when Pattern matches the lower-cased line.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

func rule(name, pattern string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(pattern)}
}

// Matches reports whether the rule excludes line.
func (r Rule) Matches(line string) bool {
	return r.Pattern.MatchString(strings.ToLower(line))
}

// Shared exclusion rules, in evaluation order.
var (
	LeadingDigit        = rule("leading-digit", `^[0-9]`)
	ArticleHeader       = rule("article-header", `^research article|^article`)
	Unclassified        = rule("unclassified", `unclassified`)
	WebLink             = rule("web-link", `www\.|https?://`)
	AcceptedBanner      = rule("accepted-banner", `accepted (from|manuscript)`)
	Proceedings         = rule("proceedings", `proceedings of`)
	Volume              = rule("volume", `vol\.|volume \d`)
	PublisherBanner     = rule("publisher-banner", `^ieee|sciencedirect`)
	TrailingYearOrPages = rule("trailing-year-or-pages", `\d{4}\)$|\d{1,4}\s?–\s?\d{1,4}$|\d{1,4}-\d{1,4}$`)
	GlyphID             = rule("glyph-id", `cid:`)

	// PDF-only rules.
	DOIPrefix = rule("doi-prefix", `^doi:|^doi |^doi$`)
	AnyDigit  = rule("any-digit", `[0-9]`)
)

// RuleSet is an ordered list of exclusion rules.
type RuleSet []Rule

// Document is the permissive set used on already-extracted page text.
var Document = RuleSet{
	LeadingDigit,
	ArticleHeader,
	Unclassified,
	WebLink,
	AcceptedBanner,
	Proceedings,
	Volume,
	PublisherBanner,
	TrailingYearOrPages,
	GlyphID,
}

// PDF extends Document with the DOI and any-digit rules: text pulled out of a
// PDF first page is noisier, so any line carrying numerals is rejected.
var PDF = append(append(RuleSet{}, Document...), DOIPrefix, AnyDigit)

// ByName returns the rule set called name ("pdf" or "document").
func ByName(name string) (RuleSet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pdf":
		return PDF, nil
	case "document", "doc", "text":
		return Document, nil
	default:
		return nil, fmt.Errorf("unknown rule set %q (want pdf or document)", name)
	}
}

// Excludes reports whether any rule in the set matches line.
func (rs RuleSet) Excludes(line string) bool {
	lower := strings.ToLower(line)
	for _, r := range rs {
		if r.Pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

// Classify returns the names of every rule that matches line, in set order.
func (rs RuleSet) Classify(line string) []string {
	lower := strings.ToLower(line)
	var hits []string
	for _, r := range rs {
		if r.Pattern.MatchString(lower) {
			hits = append(hits, r.Name)
		}
	}
	return hits
}

// ExtractTitle returns the first line that no rule excludes, verbatim, or
// schema.UnknownTitle when there is none. A blank line trips no rule, so it
// is returned like any other.
func (rs RuleSet) ExtractTitle(lines []string) string {
	for _, line := range lines {
		if rs.Excludes(line) {
			continue
		}
		return line
	}
	return schema.UnknownTitle
}

// Names lists the rule names of the set.
func (rs RuleSet) Names() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}
