// Package titlecmd prints the title line guessed from a document's first page.
package titlecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"titlematch/src/internal/config"
	"titlematch/src/internal/pagetext"
)

// source is swapped in tests.
var source pagetext.Extractor = pagetext.NewAuto()

// New returns the title command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "title <doc>",
		Short: "Print the title guessed from a document's first page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			doc := args[0]
			text, err := source.FirstPageText(doc)
			if err != nil {
				return err
			}
			title := cfg.RuleSet(pagetext.IsPDF(doc)).ExtractTitle(pagetext.Lines(text))
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), title)
			return nil
		},
	}
	cmd.Flags().String("rules", config.RulesAuto, "title rule set: auto, pdf or document")
	return cmd
}
