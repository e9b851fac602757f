// Package cli provides the command-line interface for fetchbin.
package cli

import (
	"errors"
	"os"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/binary"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/command"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/config"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/platform"
	"github.com/spf13/cobra"
)

// Deps holds the collaborators the commands read the environment through.
type Deps struct {
	// Detector reads the host platform once per invocation.
	Detector platform.Detector
	// Getenv reads FETCHBIN_* overrides.
	Getenv func(string) string
	// Downloader fetches release assets. Nil uses binary.NewDownloader.
	Downloader *binary.Downloader
}

// DefaultDeps returns dependencies bound to the real host.
func DefaultDeps() Deps {
	return Deps{
		Detector: platform.NewDetector(),
		Getenv:   os.Getenv,
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	binDir     string
	logLevel   string
}

// NewRootCommand creates the root command for fetchbin bound to the host.
func NewRootCommand(version string) *cobra.Command {
	return NewRootCommandWithDeps(version, DefaultDeps())
}

// NewRootCommandWithDeps creates the root command with injected dependencies.
func NewRootCommandWithDeps(version string, deps Deps) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "fetchbin",
		Short: "Install and run the prebuilt fetch binary",
		Long: `fetchbin downloads the fetch release binary for this platform on first
use and runs it with the options you pass, forwarding its output.

Options are written as -o name=value or -o name for a bare flag. A value
containing commas expands into one --name="choice" per element.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (handled in main)
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Lua config file (default ./"+config.DefaultFileName+" if present)")
	root.PersistentFlags().StringVar(&flags.binDir, "bin-dir", "", "Directory holding the fetch binary")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newInstallCommand(flags, deps),
		newRunCommand(flags, deps),
		newPrintCommand(flags, deps),
		newWhichCommand(flags, deps),
		newVersionCommand(version),
	)

	return root
}

// ExitCode maps an error returned by Execute to a process exit status.
// A failed fetch run propagates the child's code; any other error is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *command.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
