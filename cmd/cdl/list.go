package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gemcore/cdl/catalog"
)

// newListCmd builds the `cdl list` command tree: systems, point-groups,
// forms, and twins, each dumping a slice of the catalog package's tables.
func newListCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Dump catalog contents",
	}

	cmd.AddCommand(
		newListSystemsCmd(opts),
		newListPointGroupsCmd(opts),
		newListFormsCmd(opts),
		newListTwinsCmd(opts),
	)

	return cmd
}

func newListSystemsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "systems",
		Short: "List recognized crystal systems",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := make([]string, 0, len(catalog.CrystalSystems))
			for _, s := range catalog.CrystalSystems {
				names = append(names, string(s))
			}
			return renderStrings(cmd, opts, names)
		},
	}
}

func newListPointGroupsCmd(opts *rootOptions) *cobra.Command {
	var system string

	cmd := &cobra.Command{
		Use:   "point-groups",
		Short: "List point groups, optionally filtered to one system",
	}

	cmd.Flags().StringVar(&system, "system", "", "limit to this crystal system")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if system != "" {
			groups, ok := catalog.PointGroups[catalog.System(system)]
			if !ok {
				return fmt.Errorf("unknown system %q", system)
			}
			return renderStrings(cmd, opts, groups)
		}

		systems := make([]string, 0, len(catalog.PointGroups))
		for s := range catalog.PointGroups {
			systems = append(systems, string(s))
		}
		sort.Strings(systems)

		out := make(map[string][]string, len(systems))
		for _, s := range systems {
			out[s] = catalog.PointGroups[catalog.System(s)]
		}

		return renderAny(cmd, opts, out, func() error {
			for _, s := range systems {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", s, out[s])
			}
			return nil
		})
	}

	return cmd
}

func newListFormsCmd(opts *rootOptions) *cobra.Command {
	var system string

	cmd := &cobra.Command{
		Use:   "forms",
		Short: "List named-form bareword mappings, optionally filtered to one system",
	}
	cmd.Flags().StringVar(&system, "system", "", "limit to this crystal system")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		systems := []catalog.System{}
		if system != "" {
			systems = append(systems, catalog.System(system))
		} else {
			for s := range catalog.NamedForms {
				systems = append(systems, s)
			}
			sort.Slice(systems, func(i, j int) bool { return systems[i] < systems[j] })
		}

		out := make(map[string]map[string]catalog.MillerIndex, len(systems))
		for _, sys := range systems {
			out[string(sys)] = catalog.NamedForms[sys]
		}

		return renderAny(cmd, opts, out, func() error {
			for _, sys := range systems {
				names := make([]string, 0, len(catalog.NamedForms[sys]))
				for n := range catalog.NamedForms[sys] {
					names = append(names, n)
				}
				sort.Strings(names)
				for _, n := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "%s.%s -> %+v\n", sys, n, catalog.NamedForms[sys][n])
				}
			}
			return nil
		})
	}
	return cmd
}

func newListTwinsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "twins",
		Short: "List recognized named twin laws",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderStrings(cmd, opts, sortedKeys(catalog.TwinLaws))
		},
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// renderAny encodes v as json/yaml when requested, otherwise calls
// textFallback to print the format this package's commands use by default.
func renderAny(cmd *cobra.Command, opts *rootOptions, v interface{}, textFallback func() error) error {
	switch opts.outputFormat {
	case "json":
		return writeJSON(cmd.OutOrStdout(), v)
	case "yaml":
		return writeYAML(cmd.OutOrStdout(), v)
	default:
		return textFallback()
	}
}

func renderStrings(cmd *cobra.Command, opts *rootOptions, names []string) error {
	switch opts.outputFormat {
	case "json":
		return writeJSON(cmd.OutOrStdout(), names)
	case "yaml":
		return writeYAML(cmd.OutOrStdout(), names)
	default:
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		fmt.Fprint(cmd.OutOrStdout(), wrapColumns(sorted, terminalWidth(80)))
		return nil
	}
}
