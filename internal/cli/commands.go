package cli

import (
	"errors"
	"fmt"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/command"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/service"
	"github.com/spf13/cobra"
)

func newInstallCommand(flags *globalFlags, deps Deps) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download the fetch binary for this platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, flags, deps)
			if err != nil {
				return err
			}

			result, err := a.svc.Install(cmd.Context(), force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Downloaded {
				printf(out, "Downloaded %s (%d bytes)\n", result.Path, result.Size)
				printf(out, "  from %s\n", result.URL)
			} else {
				printf(out, "Already installed: %s\n", result.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Download again even if the binary exists")
	return cmd
}

func newRunCommand(flags *globalFlags, deps Deps) *cobra.Command {
	var opts optionFlags
	var async bool

	cmd := &cobra.Command{
		Use:   "run [flags] <dest>",
		Short: "Run fetch with the given options",
		Example: `  fetchbin run -o repo=https://github.com/gruntwork-io/module-ecs -o tag=0.1.5 \
      -o source-path=/modules/ecs-cluster /tmp/ecs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, deps)
			if err != nil {
				return err
			}
			set, err := opts.build()
			if err != nil {
				return err
			}

			result, err := a.svc.Run(cmd.Context(), service.RunRequest{
				Options: set,
				Dest:    args[0],
				Async:   async,
			})
			var exitErr *command.ExitError
			if errors.As(err, &exitErr) {
				a.logger.Error("fetch failed", "code", exitErr.Code)
				return err
			}
			if err != nil {
				return err
			}
			if async {
				a.logger.Info("fetch process exited", "pid", result.Pid, "duration", result.Duration)
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&async, "async", false, "Start fetch in the background, stream and capture its output")
	return cmd
}

func newPrintCommand(flags *globalFlags, deps Deps) *cobra.Command {
	var opts optionFlags

	cmd := &cobra.Command{
		Use:   "print [flags] <dest>",
		Short: "Print the fetch command line without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, deps)
			if err != nil {
				return err
			}
			set, err := opts.build()
			if err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "%s\n", a.svc.CommandLine(service.RunRequest{Options: set, Dest: args[0]}))
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

func newWhichCommand(flags *globalFlags, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "which",
		Short: "Show the fetch binary resolved for this platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, flags, deps)
			if err != nil {
				return err
			}

			installed, err := a.fetcher.IsInstalled()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printf(out, "platform:  %s\n", a.info.Key())
			printf(out, "name:      %s\n", a.fetcher.BinaryName())
			printf(out, "path:      %s\n", a.fetcher.Path())
			printf(out, "url:       %s\n", a.fetcher.URL())
			printf(out, "installed: %t\n", installed)
			return nil
		},
	}
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fetchbin %s\n", version)
		},
	}
}
