// Package pipeline ties the document source, title heuristic, window
// generator and resolver together for one document at a time.
package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"titlematch/src/internal/config"
	"titlematch/src/internal/pagetext"
	"titlematch/src/internal/resolve"
	"titlematch/src/internal/schema"
	"titlematch/src/internal/similarity"
	"titlematch/src/internal/store"
	"titlematch/src/internal/titleline"
	"titlematch/src/internal/window"
)

// Pipeline resolves a document to (title, author) pairs. A nil Rules picks
// the PDF or document rule set from the document's extension.
type Pipeline struct {
	Source       pagetext.Extractor
	Bibliography store.Loader
	Rules        titleline.RuleSet
	Windows      bool
	WindowSize   int
	WindowMax    int
	Resolver     *resolve.Resolver
	Log          *logrus.Logger
}

// Report is everything a run learned about one document.
type Report struct {
	Document   string               `yaml:"document" json:"document"`
	TitleGuess string               `yaml:"title_guess" json:"title_guess"`
	Windows    []string             `yaml:"windows,omitempty" json:"windows,omitempty"`
	Matches    []schema.MatchResult `yaml:"matches" json:"matches"`
}

// New builds a pipeline from configuration. The basic variant matches the
// title exactly; the augmented variant also builds candidate windows and
// falls back to scorer.
func New(cfg config.Config, scorer similarity.Scorer, log *logrus.Logger) *Pipeline {
	p := &Pipeline{
		Source:       pagetext.NewAuto(),
		Bibliography: store.BibTeX{},
		WindowSize:   cfg.Window.Size,
		WindowMax:    cfg.Window.Max,
		Log:          log,
	}
	if cfg.Rules != config.RulesAuto {
		p.Rules = cfg.RuleSet(false)
	}
	if cfg.Variant == config.VariantBasic {
		p.Resolver = resolve.Basic()
	} else {
		p.Resolver = resolve.Augmented(scorer)
		p.Resolver.Threshold = cfg.Threshold
		p.Windows = true
	}
	p.Resolver.Log = log
	return p
}

// Run returns the matches for doc against the bibliography at bib.
func (p *Pipeline) Run(ctx context.Context, doc, bib string) ([]schema.MatchResult, error) {
	r, err := p.Analyze(ctx, doc, bib)
	if err != nil {
		return nil, err
	}
	return r.Matches, nil
}

// Analyze runs the pipeline and keeps the intermediate title guess and
// windows. The bibliography is not read when no title line is found.
func (p *Pipeline) Analyze(ctx context.Context, doc, bib string) (Report, error) {
	log := p.logger().WithField("document", doc)
	rep := Report{Document: doc}

	text, err := p.Source.FirstPageText(doc)
	if err != nil {
		return rep, err
	}
	lines := pagetext.Lines(text)
	rules := p.rules(doc)
	rep.TitleGuess = rules.ExtractTitle(lines)
	if p.Windows {
		rep.Windows = window.Build(lines, p.WindowSize, p.WindowMax)
	}
	log.WithFields(logrus.Fields{"title": rep.TitleGuess, "lines": len(lines), "windows": len(rep.Windows), "rules": rules.Names()}).Debug("title guess")

	if rep.TitleGuess == schema.UnknownTitle {
		log.Info("no title line found")
		rep.Matches = []schema.MatchResult{schema.NoMatch()}
		return rep, nil
	}

	entries, err := p.Bibliography.Load(bib)
	if err != nil {
		return rep, err
	}
	matches, err := p.resolver().Resolve(ctx, rep.TitleGuess, rep.Windows, entries)
	if err != nil {
		return rep, err
	}
	rep.Matches = matches
	log.WithFields(logrus.Fields{"entries": len(entries), "matches": len(matches)}).Debug("resolved")
	return rep, nil
}

func (p *Pipeline) rules(doc string) titleline.RuleSet {
	if p.Rules != nil {
		return p.Rules
	}
	if pagetext.IsPDF(doc) {
		return titleline.PDF
	}
	return titleline.Document
}

func (p *Pipeline) resolver() *resolve.Resolver {
	if p.Resolver == nil {
		return resolve.Basic()
	}
	return p.Resolver
}

func (p *Pipeline) logger() *logrus.Logger {
	if p.Log != nil {
		return p.Log
	}
	return logrus.StandardLogger()
}
