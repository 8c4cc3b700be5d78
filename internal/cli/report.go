package cli

import (
	"fmt"
	"io"

	"github.com/LegacyCodeHQ/amalgam/amalgam"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// PrintCompletion writes the one-line summary of a finished build.
func PrintCompletion(w io.Writer, report *amalgam.Report) error {
	_, err := color.New(color.FgGreen).Fprintf(w, "Completed: %s, %s, %s written to %s\n",
		plural(len(report.Headers), "header"),
		plural(len(report.Sources), "source"),
		humanize.Bytes(uint64(report.Stats.BytesWritten)),
		DisplayPath(report.TargetPath),
	)
	return err
}

// PrintUpToDate writes the summary of a successful check.
func PrintUpToDate(w io.Writer, report *amalgam.Report) error {
	_, err := color.New(color.FgGreen).Fprintf(w, "Up to date: %s\n", DisplayPath(report.TargetPath))
	return err
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
