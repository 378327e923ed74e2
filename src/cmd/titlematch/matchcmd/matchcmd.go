// Package matchcmd resolves documents to bibliography titles and authors.
package matchcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"titlematch/src/cmd/titlematch/render"
	"titlematch/src/internal/config"
	"titlematch/src/internal/logging"
	"titlematch/src/internal/names"
	"titlematch/src/internal/pipeline"
	"titlematch/src/internal/resolve"
	"titlematch/src/internal/similarity"
	"titlematch/src/internal/window"
)

// newScorer is swapped in tests to avoid network backends.
var newScorer = similarity.New

// New returns the match command.
func New() *cobra.Command {
	var bib, format string
	var shortAuthors bool
	cmd := &cobra.Command{
		Use:   "match --bib <path> <doc>...",
		Short: "Match documents to bibliography entries by first-page title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(bib) == "" {
				return fmt.Errorf("--bib is required")
			}
			if err := render.CheckFormat(format); err != nil {
				return err
			}
			cfg, err := config.FromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			log := logging.New(cfg.Log.Level, cmd.ErrOrStderr())
			var scorer similarity.Scorer
			if cfg.Variant == config.VariantAugmented {
				if scorer, err = newScorer(cfg.SimilarityOptions()); err != nil {
					return err
				}
			}
			p := pipeline.New(cfg, scorer, log)
			reports := make([]pipeline.Report, 0, len(args))
			for _, doc := range args {
				r, err := p.Analyze(cmd.Context(), doc, bib)
				if err != nil {
					return err
				}
				reports = append(reports, r)
			}
			return write(cmd, format, shortAuthors, reports)
		},
	}
	f := cmd.Flags()
	f.StringVar(&bib, "bib", "", "BibTeX file or directory of .bib files")
	f.StringVar(&format, "format", render.FormatTable, "output format: table, json or yaml")
	f.BoolVar(&shortAuthors, "short-authors", false, "abbreviate given names in table output")
	f.String("variant", config.VariantAugmented, "resolution variant: basic or augmented")
	f.String("rules", config.RulesAuto, "title rule set: auto, pdf or document")
	f.Float64("threshold", resolve.DefaultThreshold, "similarity score a fallback match must exceed")
	f.Int("window", window.DefaultSize, "lines per candidate window")
	f.Int("max-window", window.DefaultMax, "maximum candidate windows per document")
	f.String("similarity", similarity.BackendLexical, "similarity backend: none, lexical, http or openai")
	f.String("scorer-url", "", "scoring service URL for the http backend")
	f.String("model", similarity.DefaultEmbeddingModel, "embedding model for the openai backend")
	return cmd
}

func write(cmd *cobra.Command, format string, short bool, reports []pipeline.Report) error {
	if format != render.FormatTable {
		return render.Encode(cmd.OutOrStdout(), format, reports)
	}
	var rows [][]string
	for _, r := range reports {
		for _, m := range r.Matches {
			author := m.Author
			if short && !m.IsNoMatch() {
				author = names.Short(author)
			}
			rows = append(rows, []string{r.Document, m.Title, author})
		}
	}
	render.Table(cmd.OutOrStdout(), []string{"document", "title", "author"}, rows)
	return nil
}
