package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gemcore/cdl"
)

// errInvalid signals a non-zero exit for an invalid CDL string without
// printing Go's default "Error: ..." prefix — validate prints its own
// "Invalid: <reason>" line instead.
var errInvalid = errors.New("invalid CDL string")

// newValidateCmd builds `cdl validate <cdl-string>`.
func newValidateCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <cdl-string>",
		Short: "Validate a CDL v2 string against the domain catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, reason := cdl.Validate(args[0])
			if ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Valid CDL string")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid: %s\n", reason)
			return errInvalid
		},
		SilenceErrors: true,
	}
}
