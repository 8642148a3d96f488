package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gemcore/cdl"
)

// newParseCmd builds `cdl parse <cdl-string>`.
func newParseCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <cdl-string>",
		Short: "Parse a CDL v2 string and print its description tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := cdl.Parse(args[0])
			if err != nil {
				return fmt.Errorf("syntax error: %w", err)
			}

			format := opts.outputFormat
			if asJSON {
				format = "json"
			}
			return renderDescription(cmd.OutOrStdout(), desc, format)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "shorthand for --format json")

	return cmd
}
