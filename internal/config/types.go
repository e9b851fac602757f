package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/command"
)

// Config holds fetchbin settings.
type Config struct {
	// Version is the fetch release tag, e.g. "v0.1.1".
	Version string
	// BaseURL is the release download root.
	BaseURL string
	// BinDir is where the fetch binary is stored.
	BinDir string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// Options are default options passed to every invocation.
	Options *command.OptionSet
}

// Default returns the built-in configuration. The binary directory is the
// directory of the running executable.
func Default() *Config {
	return &Config{
		Version:  defaultVersion,
		BaseURL:  defaultBaseURL,
		BinDir:   executableDir(),
		LogLevel: defaultLogLevel,
		Options:  command.NewOptionSet(),
	}
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// ValidationError reports an invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Version) == "" {
		return &ValidationError{Field: luaFieldVersion, Message: "must not be empty"}
	}
	if strings.ContainsAny(c.Version, " \t\n") {
		return &ValidationError{Field: luaFieldVersion, Message: fmt.Sprintf("%q contains whitespace", c.Version)}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return &ValidationError{Field: luaFieldBaseURL, Message: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: luaFieldBaseURL, Message: fmt.Sprintf("%q must use http or https", c.BaseURL)}
	}
	if u.Host == "" {
		return &ValidationError{Field: luaFieldBaseURL, Message: fmt.Sprintf("%q has no host", c.BaseURL)}
	}

	if strings.TrimSpace(c.BinDir) == "" {
		return &ValidationError{Field: luaFieldBinDir, Message: "must not be empty"}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Field: luaFieldLogLevel, Message: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}

	return nil
}

// applyEnv overrides settings from environment variables.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvVersion); v != "" {
		c.Version = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(EnvBinDir); v != "" {
		c.BinDir = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}
