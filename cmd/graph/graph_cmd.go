package graph

import (
	"fmt"
	"strings"

	"fortio.org/log"
	"github.com/LegacyCodeHQ/amalgam/amalgam"
	"github.com/LegacyCodeHQ/amalgam/internal/cli"
	"github.com/spf13/cobra"
)

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "graph [sources...]",
		Short: "Print the include graph of the given sources",
		Long: `Print the graph of quoted includes reachable from the given sources.

Source files are highlighted, and edges that take part in an include cycle
are drawn in red. Nothing is written to the target file.

Examples:
  amalgam graph src/APIDefs.h
  amalgam graph src/APIDefs.h -f mermaid
  amalgam graph a.c b.c --blacklisted_includes internal | dot -Tsvg > includes.svg`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, args, outputFormat)
		},
	}

	cli.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVarP(&outputFormat, "format", "f", OutputFormatDOT.String(),
		fmt.Sprintf("Output format (%s, %s)", OutputFormatDOT, OutputFormatMermaid))

	return cmd
}

func runGraph(cmd *cobra.Command, sources []string, outputFormat string) error {
	formatter, err := newFormatter(outputFormat)
	if err != nil {
		return err
	}

	opts, err := cli.LoadOptions(cmd, sources)
	if err != nil {
		return err
	}

	result, err := amalgam.Collect(opts)
	if err != nil {
		return err
	}

	g, err := newIncludeGraph(result)
	if err != nil {
		return fmt.Errorf("failed to build include graph: %w", err)
	}

	for _, cycle := range g.Cycles {
		log.Warnf("Include cycle: %s", strings.Join(cycle, " <-> "))
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), formatter.Format(g))
	return err
}
