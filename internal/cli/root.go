package cli

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"apcmake/internal/log"
)

const (
	cmdName = "apcmake"

	shortDesc = "Patch Selaco CMake builds for Archipelago integration."
	longDesc  = `apcmake splices the Archipelago multiworld integration into a Selaco
(GZDoom-derived) CMake build.

It patches the root CMakeLists.txt with the FetchContent dependency block
(libwebsockets + nlohmann/json), the selaco_archipelago static library and a
link statement for the main executable, and the source-tree CMakeLists.txt
with the integration subdirectory and per-game link statements.

Every insertion is guarded by a signature, so re-running any command on an
already patched file changes nothing. The pristine file is kept next to the
original as CMakeLists.txt.backup.
`
)

// NewRootCmd builds the apcmake command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.PersistentFlags().String("log_level", "info", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, json)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
		}

		h, err := log.CreateHandler(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}
		slog.SetDefault(slog.New(h))

		return nil
	}

	cmd.AddCommand(NewRootPatchCmd())
	cmd.AddCommand(NewSrcPatchCmd())
	cmd.AddCommand(NewTargetsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}
