package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/binary"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/command"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/config"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/logging"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/platform"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/service"
	"github.com/spf13/cobra"
)

// app is the per-invocation wiring: the platform detected once, the
// effective config and the services built from them.
type app struct {
	info    *platform.Info
	cfg     *config.Config
	logger  logging.Logger
	fetcher *binary.Fetcher
	runner  *command.Runner
	svc     *service.LaunchService
}

func newApp(cmd *cobra.Command, flags *globalFlags, deps Deps) (*app, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	detector := deps.Detector
	if detector == nil {
		detector = platform.NewDetector()
	}
	info, err := detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}
	// Fail before touching config or network when there is no release.
	if _, err := platform.ResolveBinaryName(info.Key()); err != nil {
		return nil, err
	}

	cfg, err := config.NewParser(info).Load(ctx, config.LoadOptions{
		Path:     flags.configPath,
		Required: flags.configPath != "",
		Getenv:   deps.Getenv,
	})
	if err != nil {
		var parseErr *config.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("load config: %s", config.FormatError(err, false))
		}
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flags.binDir != "" {
		cfg.BinDir = flags.binDir
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel))
	logger.Debug("platform detected", "platform", info.Key().String(), "distro", info.GetDistro())

	fetcher, err := binary.NewFetcher(binary.Config{
		BinDir:       cfg.BinDir,
		PlatformInfo: info,
		Release:      binary.Release{BaseURL: cfg.BaseURL, Version: cfg.Version},
		Downloader:   deps.Downloader,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}

	runner := command.NewRunner(command.NewBuilder(fetcher.Path()))
	runner.Stdin = cmd.InOrStdin()
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	return &app{
		info:    info,
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		runner:  runner,
		svc:     service.NewLaunchService(fetcher, runner, cfg.Options, service.RealClock{}, logger),
	}, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
