// Package inspectcmd shows how the title heuristic reads a document: the
// rules each line trips, the chosen title, the candidate windows and, for
// PDFs, the title recorded in the document metadata.
package inspectcmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"titlematch/src/cmd/titlematch/render"
	"titlematch/src/internal/config"
	"titlematch/src/internal/logging"
	"titlematch/src/internal/pagetext"
	"titlematch/src/internal/sanitize"
	"titlematch/src/internal/titleline"
	"titlematch/src/internal/window"
)

// Line verdicts.
const (
	VerdictExcluded  = "excluded"
	VerdictTitle     = "title"
	VerdictCandidate = "candidate"
)

// maxLineCell caps the line column of the table view.
const maxLineCell = 96

// Package-level seams for tests.
var (
	source        pagetext.Extractor = pagetext.NewAuto()
	metadataTitle                    = pagetext.MetadataTitle
)

// LineVerdict is the heuristic's view of one first-page line.
type LineVerdict struct {
	Index   int      `yaml:"index" json:"index"`
	Text    string   `yaml:"text" json:"text"`
	Verdict string   `yaml:"verdict" json:"verdict"`
	Rules   []string `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Inspection is the full report printed by the command.
type Inspection struct {
	Document      string        `yaml:"document" json:"document"`
	RuleSet       string        `yaml:"rule_set" json:"rule_set"`
	TitleGuess    string        `yaml:"title_guess" json:"title_guess"`
	MetadataTitle string        `yaml:"metadata_title,omitempty" json:"metadata_title,omitempty"`
	Lines         []LineVerdict `yaml:"lines" json:"lines"`
	Windows       []string      `yaml:"windows,omitempty" json:"windows,omitempty"`
}

// New returns the inspect command.
func New() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect <doc>",
		Short: "Show per-line rule verdicts, candidate windows and the PDF metadata title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.CheckFormat(format); err != nil {
				return err
			}
			cfg, err := config.FromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			log := logging.New(cfg.Log.Level, cmd.ErrOrStderr())
			doc := args[0]
			text, err := source.FirstPageText(doc)
			if err != nil {
				return err
			}
			isPDF := pagetext.IsPDF(doc)
			rs := cfg.RuleSet(isPDF)
			in := Inspect(doc, pagetext.Lines(text), rs, cfg.Window.Size, cfg.Window.Max)
			in.RuleSet = ruleSetName(rs)
			if isPDF {
				if in.MetadataTitle, err = metadataTitle(doc); err != nil {
					log.WithError(err).WithField("document", doc).Warn("read pdf metadata")
				}
			}
			if format != render.FormatTable {
				return render.Encode(cmd.OutOrStdout(), format, in)
			}
			writeTable(cmd, in)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&format, "format", render.FormatTable, "output format: table, json or yaml")
	f.String("rules", config.RulesAuto, "title rule set: auto, pdf or document")
	f.Int("window", window.DefaultSize, "lines per candidate window")
	f.Int("max-window", window.DefaultMax, "maximum candidate windows")
	return cmd
}

// Inspect classifies every line with rs and builds the candidate windows.
func Inspect(doc string, lines []string, rs titleline.RuleSet, size, max int) Inspection {
	in := Inspection{
		Document:   doc,
		TitleGuess: rs.ExtractTitle(lines),
		Windows:    window.Build(lines, size, max),
	}
	titled := false
	for i, line := range lines {
		v := LineVerdict{Index: i + 1, Text: line, Rules: rs.Classify(line)}
		switch {
		case len(v.Rules) > 0:
			v.Verdict = VerdictExcluded
		case !titled:
			v.Verdict = VerdictTitle
			titled = true
		default:
			v.Verdict = VerdictCandidate
		}
		in.Lines = append(in.Lines, v)
	}
	return in
}

func ruleSetName(rs titleline.RuleSet) string {
	if len(rs) == len(titleline.PDF) {
		return "pdf"
	}
	return "document"
}

func writeTable(cmd *cobra.Command, in Inspection) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "document: %s\nrules: %s\ntitle: %s\n", in.Document, in.RuleSet, in.TitleGuess)
	if in.MetadataTitle != "" {
		_, _ = fmt.Fprintf(w, "metadata title: %s\n", in.MetadataTitle)
	}
	_, _ = fmt.Fprintln(w)
	rows := make([][]string, 0, len(in.Lines))
	for _, l := range in.Lines {
		rows = append(rows, []string{strconv.Itoa(l.Index), l.Verdict, strings.Join(l.Rules, ","), sanitize.CleanString(l.Text, maxLineCell)})
	}
	render.Table(w, []string{"#", "verdict", "rules", "line"}, rows)
	if len(in.Windows) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "\nwindows:")
	for i, win := range in.Windows {
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, win)
	}
}
