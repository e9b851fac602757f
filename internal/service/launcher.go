// Package service composes the fetcher and the command runner into the
// operations exposed by the fetchbin CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/binary"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/command"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/logging"
)

// Installer makes the fetch binary available on disk.
type Installer interface {
	EnsureInstalled(ctx context.Context) (*binary.FetchResult, error)
	Download(ctx context.Context) (*binary.FetchResult, error)
	Path() string
}

// Executor runs the fetch binary with an option set.
type Executor interface {
	Run(ctx context.Context, opts *command.OptionSet, dest string) error
	Start(ctx context.Context, opts *command.OptionSet, dest string, cb command.Callback) (*command.Process, error)
	Builder() *command.Builder
}

// LaunchService installs the fetch binary on demand and invokes it.
type LaunchService struct {
	installer Installer
	executor  Executor
	defaults  *command.OptionSet
	clock     Clock
	logger    logging.Logger
}

// NewLaunchService creates a launch service with dependency injection.
// defaults are merged beneath every request's options and may be nil.
func NewLaunchService(
	installer Installer,
	executor Executor,
	defaults *command.OptionSet,
	clock Clock,
	logger logging.Logger,
) *LaunchService {
	if clock == nil {
		clock = RealClock{}
	}
	return &LaunchService{
		installer: installer,
		executor:  executor,
		defaults:  defaults,
		clock:     clock,
		logger:    logging.OrNop(logger),
	}
}

// RunRequest describes one invocation of the fetch binary.
type RunRequest struct {
	// Options override the configured defaults by name.
	Options *command.OptionSet
	// Dest is the destination argument, passed last.
	Dest string
	// Async launches the child without inheriting stdin and captures its
	// output while streaming it.
	Async bool
}

// RunResult reports a completed invocation.
type RunResult struct {
	CommandLine string
	Pid         int
	ExitCode    int
	Stdout      string
	Stderr      string
	Duration    time.Duration
}

// Install ensures the binary exists. With force it is downloaded again.
func (s *LaunchService) Install(ctx context.Context, force bool) (*binary.FetchResult, error) {
	if force {
		return s.installer.Download(ctx)
	}
	return s.installer.EnsureInstalled(ctx)
}

// Options returns the defaults merged with overrides, as used for a request.
func (s *LaunchService) Options(overrides *command.OptionSet) *command.OptionSet {
	return command.NewOptionSet().Merge(s.defaults).Merge(overrides)
}

// CommandLine returns the display form of the command a request would run.
func (s *LaunchService) CommandLine(req RunRequest) string {
	return s.executor.Builder().CommandLine(s.Options(req.Options), req.Dest)
}

// Run ensures the binary is installed and executes it. A non-zero exit is
// reported both in the result and as a *command.ExitError.
func (s *LaunchService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if req.Dest == "" {
		return nil, command.ErrMissingDestination
	}

	if _, err := s.installer.EnsureInstalled(ctx); err != nil {
		return nil, fmt.Errorf("install fetch: %w", err)
	}

	opts := s.Options(req.Options)
	result := &RunResult{CommandLine: s.executor.Builder().CommandLine(opts, req.Dest)}
	s.logger.Debug("running fetch", "command", result.CommandLine, "async", req.Async)

	start := s.clock.Now()
	var err error
	if req.Async {
		err = s.runAsync(ctx, opts, req.Dest, result)
	} else {
		err = s.executor.Run(ctx, opts, req.Dest)
	}
	result.Duration = s.clock.Now().Sub(start)

	var exitErr *command.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.Code
		s.logger.Warn("fetch exited with error", "code", exitErr.Code, "duration", result.Duration)
		return result, err
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("fetch finished", "duration", result.Duration)
	return result, nil
}

func (s *LaunchService) runAsync(ctx context.Context, opts *command.OptionSet, dest string, result *RunResult) error {
	type outcome struct {
		err            error
		stdout, stderr string
	}
	done := make(chan outcome, 1)

	proc, err := s.executor.Start(ctx, opts, dest, func(err error, stdout, stderr string) {
		done <- outcome{err: err, stdout: stdout, stderr: stderr}
	})
	if err != nil {
		return err
	}
	result.Pid = proc.Pid()
	s.logger.Debug("fetch started", "pid", result.Pid)

	out := <-done
	result.Stdout = out.stdout
	result.Stderr = out.stderr
	return out.err
}
