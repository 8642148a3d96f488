package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gemcore/cdl/internal/clilog"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	outputFormat string // "text" | "json" | "yaml"
	log          *clilog.Config
}

// newRootCommand builds the `cdl` root command and mounts every subcommand
// onto it. It is the one cobra.Command shared across main, tests, and the
// generated shell completions.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{log: clilog.NewConfig()}

	cmd := &cobra.Command{
		Use:   "cdl",
		Short: "Parse, validate, and inspect Crystal Description Language v2 strings",
		Long: `cdl is a thin command-line wrapper around the Crystal Description
Language v2 front end: a tokenizer, parser, and validator for the compact
textual notation gemmology and mineralogy tooling uses to describe crystal
morphology. The CLI is not the core surface — programmatic callers should
import the cdl Go package directly — but it is useful for spot-checking
strings and enumerating the domain catalogs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			handler, err := opts.log.NewHandler(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.outputFormat, "format", "f", "text", "output format: text, json, or yaml")
	opts.log.RegisterFlags(pf)

	if err := opts.log.RegisterCompletions(cmd); err != nil {
		slog.Default().Warn("register log flag completions", "error", err)
	}

	cmd.AddCommand(
		newParseCmd(opts),
		newValidateCmd(opts),
		newListCmd(opts),
		newSchemaCmd(opts),
	)

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCommand().Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(Execute())
}
