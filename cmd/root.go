package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/LegacyCodeHQ/amalgam/amalgam"
	"github.com/LegacyCodeHQ/amalgam/cmd/graph"
	"github.com/LegacyCodeHQ/amalgam/cmd/headers"
	"github.com/LegacyCodeHQ/amalgam/cmd/watch"
	"github.com/LegacyCodeHQ/amalgam/internal/cli"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// NewRootCommand returns the amalgam command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "amalgam [sources...]",
		Short: "Amalgamate C/C++ headers and sources into a single file",
		Long: `Amalgam follows every #include "..." reachable from the given source files,
concatenates the headers it finds followed by the sources themselves into one
output file, strips preprocessor guards and include lines, and collapses runs
of blank lines.

Angle-bracket includes (#include <...>) are left alone. Includes whose path
contains any --blacklisted_includes entry are never opened.

Settings are read from flags, AMALGAM_* environment variables and an optional
.amalgam.yaml config file, in that order of precedence.

Examples:
  amalgam src/APIDefs.h
  amalgam src/APIDefs.h --target_path include/Nexus.h
  amalgam a.c b.c --blacklisted_includes internal,third_party
  amalgam src/APIDefs.h --write_mode append
  amalgam src/APIDefs.h --check`,
		Version:      version,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, check)
		},
	}

	cli.RegisterFlags(cmd.Flags())
	cmd.Flags().BoolVar(&check, "check", false, "Verify the target is up to date without writing it")

	cmd.AddCommand(headers.NewCommand())
	cmd.AddCommand(graph.NewCommand())
	cmd.AddCommand(watch.NewCommand())

	// Initialize annotations for version template
	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, sources []string, check bool) error {
	opts, err := cli.LoadOptions(cmd, sources)
	if err != nil {
		return err
	}

	if check {
		report, diff, err := amalgam.Check(opts)
		if errors.Is(err, amalgam.ErrStale) {
			fmt.Fprint(cmd.ErrOrStderr(), diff)
		}
		if err != nil {
			return err
		}
		return cli.PrintUpToDate(cmd.OutOrStdout(), report)
	}

	report, err := amalgam.Build(opts)
	if err != nil {
		return err
	}

	return cli.PrintCompletion(cmd.OutOrStdout(), report)
}
