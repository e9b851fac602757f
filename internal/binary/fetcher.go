package binary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/logging"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/platform"
)

// ErrNotInstalled is returned when the binary is required but absent.
var ErrNotInstalled = errors.New("fetch binary is not installed")

// Config holds configuration for the fetcher.
type Config struct {
	// BinDir is the directory holding the binary.
	BinDir string
	// PlatformInfo selects which release asset to use.
	PlatformInfo *platform.Info
	// Release overrides the download location. Empty fields use defaults.
	Release Release
	// Downloader overrides the HTTP downloader (for testing).
	Downloader *Downloader
	// Logger receives progress messages. Nil disables logging.
	Logger logging.Logger
}

// Fetcher makes sure the platform's fetch binary exists in BinDir.
type Fetcher struct {
	binDir     string
	name       string
	release    Release
	downloader *Downloader
	logger     logging.Logger
}

// NewFetcher creates a fetcher. It fails when the platform has no release.
func NewFetcher(cfg Config) (*Fetcher, error) {
	if cfg.BinDir == "" {
		return nil, fmt.Errorf("BinDir is required")
	}
	if cfg.PlatformInfo == nil {
		return nil, fmt.Errorf("PlatformInfo is required")
	}

	name, err := platform.ResolveBinaryName(cfg.PlatformInfo.Key())
	if err != nil {
		return nil, fmt.Errorf("resolve binary name: %w", err)
	}

	binDir, err := filepath.Abs(cfg.BinDir)
	if err != nil {
		return nil, fmt.Errorf("resolve bin dir: %w", err)
	}

	downloader := cfg.Downloader
	if downloader == nil {
		downloader = NewDownloader()
	}

	return &Fetcher{
		binDir:     binDir,
		name:       name,
		release:    cfg.Release.withDefaults(),
		downloader: downloader,
		logger:     logging.OrNop(cfg.Logger),
	}, nil
}

// BinaryName returns the release asset name for the platform.
func (f *Fetcher) BinaryName() string {
	return f.name
}

// Path returns the absolute path of the binary.
func (f *Fetcher) Path() string {
	return filepath.Join(f.binDir, f.name)
}

// URL returns the release download URL of the binary.
func (f *Fetcher) URL() string {
	return f.release.URL(f.name)
}

// IsInstalled checks if the binary exists, is non-empty and is executable.
func (f *Fetcher) IsInstalled() (bool, error) {
	info, err := os.Stat(f.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat binary: %w", err)
	}

	if !info.Mode().IsRegular() || info.Size() == 0 {
		return false, nil
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return false, nil
	}

	return true, nil
}

// RequireInstalled returns ErrNotInstalled if the binary is missing.
func (f *Fetcher) RequireInstalled() error {
	installed, err := f.IsInstalled()
	if err != nil {
		return err
	}
	if !installed {
		return fmt.Errorf("%w: %s", ErrNotInstalled, f.Path())
	}
	return nil
}

// EnsureInstalled downloads the binary unless it is already present.
func (f *Fetcher) EnsureInstalled(ctx context.Context) (*FetchResult, error) {
	installed, err := f.IsInstalled()
	if err != nil {
		return nil, fmt.Errorf("check if installed: %w", err)
	}
	if installed {
		f.logger.Debug("binary already installed", "path", f.Path())
		return f.existingResult()
	}

	return f.download(ctx, false)
}

// Download fetches the binary even if it is already present.
func (f *Fetcher) Download(ctx context.Context) (*FetchResult, error) {
	return f.download(ctx, true)
}

func (f *Fetcher) download(ctx context.Context, force bool) (*FetchResult, error) {
	lock, err := AcquireLock(ctx, f.binDir, f.name+".lock")
	if err != nil {
		return nil, fmt.Errorf("acquire download lock: %w", err)
	}
	defer f.releaseLock(lock)

	// Another process may have finished while we waited for the lock.
	if !force {
		if installed, err := f.IsInstalled(); err == nil && installed {
			f.logger.Debug("binary installed by another process", "path", f.Path())
			return f.existingResult()
		}
	}

	url := f.URL()
	f.logger.Info("downloading binary", "url", url, "path", f.Path())

	start := time.Now()
	size, err := f.downloader.DownloadToFile(ctx, url, f.Path())
	if err != nil {
		f.logger.Error("download failed", "url", url, "error", err)
		return nil, fmt.Errorf("download %s: %w", f.name, err)
	}

	result := &FetchResult{
		Name:       f.name,
		Path:       f.Path(),
		URL:        url,
		Downloaded: true,
		Size:       size,
		Duration:   time.Since(start),
	}
	f.logger.Info("binary downloaded", "path", result.Path, "bytes", size, "duration", result.Duration)

	return result, nil
}

// releaseLock logs instead of failing the download; Release clears the
// lock's path, so it is read first.
func (f *Fetcher) releaseLock(lock *Lock) {
	path := lock.Path()
	if err := lock.Release(); err != nil {
		f.logger.Warn("failed to release download lock", "path", path, "error", err)
	}
}

func (f *Fetcher) existingResult() (*FetchResult, error) {
	info, err := os.Stat(f.Path())
	if err != nil {
		return nil, fmt.Errorf("stat binary: %w", err)
	}
	return &FetchResult{
		Name: f.name,
		Path: f.Path(),
		URL:  f.URL(),
		Size: info.Size(),
	}, nil
}
