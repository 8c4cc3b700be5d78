package watch

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/LegacyCodeHQ/amalgam/internal/cli"
	"github.com/spf13/cobra"
)

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [sources...]",
		Short: "Rebuild the amalgamation whenever a source or header changes",
		Long: `Build the amalgamation once, then watch every source file and collected
header and rebuild after changes settle. Includes that could not be resolved
are watched too, so creating a missing header triggers a rebuild.

Examples:
  amalgam watch src/APIDefs.h
  amalgam watch src/APIDefs.h --target_path include/Nexus.h`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runWatch,
	}

	cli.RegisterFlags(cmd.Flags())

	return cmd
}

func runWatch(cmd *cobra.Command, sources []string) error {
	opts, err := cli.LoadOptions(cmd, sources)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return watchAndRebuild(ctx, cmd.OutOrStdout(), opts)
}
