// Package resolve maps a guessed title to bibliography entries.
//
// Resolution runs in two stages. The exact stage looks for entries whose
// brace-stripped title contains the guess, ignoring case. If that finds
// nothing and a Scorer is configured, the similarity stage scores every
// candidate window against every entry title and keeps the best pair above
// Threshold.
package resolve

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"titlematch/src/internal/names"
	"titlematch/src/internal/schema"
	"titlematch/src/internal/similarity"
	"titlematch/src/internal/stringsx"
)

// ExactMode selects how the exact stage treats multiple hits.
type ExactMode int

const (
	// ExactCollectAll returns every entry whose title contains the guess.
	ExactCollectAll ExactMode = iota
	// ExactFirstMatch returns as soon as one entry matches.
	ExactFirstMatch
)

func (m ExactMode) String() string {
	if m == ExactFirstMatch {
		return "first-match"
	}
	return "collect-all"
}

// DefaultThreshold is the score a similarity match must exceed.
const DefaultThreshold = 0.8

// Resolver holds the resolution strategy. A nil Scorer disables the
// similarity stage.
type Resolver struct {
	Exact        ExactMode
	PreferEditor bool
	Scorer       similarity.Scorer
	Threshold    float64
	Log          *logrus.Logger
}

// Basic collects every exact hit and never falls back to similarity.
func Basic() *Resolver {
	return &Resolver{Exact: ExactCollectAll, Threshold: DefaultThreshold}
}

// Augmented stops at the first exact hit, prefers editors over authors, and
// falls back to scorer when nothing matches exactly.
func Augmented(scorer similarity.Scorer) *Resolver {
	return &Resolver{Exact: ExactFirstMatch, PreferEditor: true, Scorer: scorer, Threshold: DefaultThreshold}
}

// Resolve returns the matches for title. The result is never empty: when
// title is schema.UnknownTitle or nothing matches it holds the sentinel pair.
// Errors come only from the Scorer.
func (r *Resolver) Resolve(ctx context.Context, title string, windows []string, entries []schema.BibEntry) ([]schema.MatchResult, error) {
	if title == schema.UnknownTitle {
		return []schema.MatchResult{schema.NoMatch()}, nil
	}
	if matches := r.exact(title, entries); len(matches) > 0 {
		return matches, nil
	}
	if r.Scorer != nil {
		matches, err := r.similar(ctx, windows, entries)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return matches, nil
		}
	}
	return []schema.MatchResult{schema.NoMatch()}, nil
}

func (r *Resolver) exact(title string, entries []schema.BibEntry) []schema.MatchResult {
	var matches []schema.MatchResult
	for _, e := range entries {
		cleaned := stringsx.RemoveBraces(e.Title())
		if !stringsx.ContainsFold(cleaned, title) {
			continue
		}
		matches = append(matches, schema.MatchResult{Title: cleaned, Author: r.firstAuthor(e)})
		if r.Exact == ExactFirstMatch {
			return matches
		}
	}
	return matches
}

// similar keeps only the pair that last raised the running best score. The
// comparison is strict, so a later pair tying the best never displaces it.
func (r *Resolver) similar(ctx context.Context, windows []string, entries []schema.BibEntry) ([]schema.MatchResult, error) {
	var matches []schema.MatchResult
	best := r.Threshold
	for _, e := range entries {
		cleaned := stringsx.RemoveBraces(e.Title())
		for _, w := range windows {
			score, err := r.Scorer.Score(ctx, w, cleaned)
			if err != nil {
				return nil, errors.Wrapf(err, "score entry %q", e.Key)
			}
			if score > best {
				best = score
				matches = []schema.MatchResult{{Title: cleaned, Author: r.firstAuthor(e)}}
				r.logger().WithFields(logrus.Fields{
					"score":  score,
					"window": w,
					"title":  cleaned,
				}).Debug("similarity match")
			}
		}
	}
	return matches, nil
}

func (r *Resolver) firstAuthor(e schema.BibEntry) string {
	if r.PreferEditor {
		if ed, ok := e.Editor(); ok {
			return names.FirstAuthor(ed)
		}
	}
	a, _ := e.Author()
	return names.FirstAuthor(a)
}

func (r *Resolver) logger() *logrus.Logger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}
