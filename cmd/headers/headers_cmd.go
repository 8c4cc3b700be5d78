package headers

import (
	"fmt"
	"os"

	"github.com/LegacyCodeHQ/amalgam/amalgam"
	"github.com/LegacyCodeHQ/amalgam/internal/cli"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewCommand returns a new headers command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headers [sources...]",
		Short: "List the headers an amalgamation would contain",
		Long: `List every header a build would emit from the given sources, in emission
order, together with the file that first included it and its size. Includes that
were skipped as blacklisted or missing are listed after the table.

Examples:
  amalgam headers src/APIDefs.h
  amalgam headers src/APIDefs.h --header_order dependency`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runHeaders,
	}

	cli.RegisterFlags(cmd.Flags())

	return cmd
}

func runHeaders(cmd *cobra.Command, sources []string) error {
	opts, err := cli.LoadOptions(cmd, sources)
	if err != nil {
		return err
	}

	report, err := amalgam.Plan(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, renderTable(report)); err != nil {
		return err
	}

	for _, skipped := range report.Collection.Skipped {
		if _, err := fmt.Fprintf(out, "skipped (%s): %q in %s\n", skipped.Reason, skipped.Include, cli.DisplayPath(skipped.From)); err != nil {
			return err
		}
	}

	return nil
}

// renderTable lists the headers a build would emit, so the target never
// shows up even when a source includes it.
func renderTable(report *amalgam.Report) string {
	headers := report.Headers
	includedBy := report.Collection.IncludedBy

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "Header", "Included By", "Size"})

	var total uint64
	for i, header := range headers {
		size := fileSize(header)
		total += size
		tbl.AppendRow(table.Row{
			i + 1,
			cli.DisplayPath(header),
			cli.DisplayPath(includedBy[header]),
			humanize.Bytes(size),
		})
	}

	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d", len(headers)), "", humanize.Bytes(total)})

	return tbl.Render()
}

func fileSize(path string) uint64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return uint64(info.Size())
}
