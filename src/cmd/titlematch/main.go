package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"titlematch/src/cmd/titlematch/inspectcmd"
	"titlematch/src/cmd/titlematch/matchcmd"
	"titlematch/src/cmd/titlematch/titlecmd"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "titlematch",
		Short:         "Match papers to bibliography entries by their first-page title",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("config", "", "config file (default ./titlematch.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	return cmd
}

func execute() error {
	// Attach subcommands
	rootCmd.AddCommand(matchcmd.New())
	rootCmd.AddCommand(titlecmd.New())
	rootCmd.AddCommand(inspectcmd.New())
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
