package platform

import (
	"errors"
	"fmt"
	"strings"
)

// archPlaceholder is replaced by the architecture token in release templates.
const archPlaceholder = "%ARCH"

var (
	// ErrUnsupportedOS is returned when no release exists for the operating system.
	ErrUnsupportedOS = errors.New("unsupported operating system")
	// ErrUnsupportedArch is returned when no release exists for the architecture.
	ErrUnsupportedArch = errors.New("unsupported architecture")
)

// releaseTemplates maps GOOS values to release asset name templates.
// FreeBSD runs the Linux build.
var releaseTemplates = map[string]string{
	"darwin":  "fetch_darwin_" + archPlaceholder,
	"freebsd": "fetch_linux_" + archPlaceholder,
	"linux":   "fetch_linux_" + archPlaceholder,
	"windows": "fetch_windows_" + archPlaceholder + ".exe",
}

// ResolveBinaryName returns the release asset name for the platform key.
func ResolveBinaryName(key Key) (string, error) {
	template, ok := releaseTemplates[normalizeOS(key.OS)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOS, key.OS)
	}

	token, err := normalizeArch(key.Arch)
	if err != nil {
		return "", err
	}

	return strings.Replace(template, archPlaceholder, token, 1), nil
}

// MustResolveBinaryName is like ResolveBinaryName but panics when the
// platform has no published binary. Use it only during startup.
func MustResolveBinaryName(key Key) string {
	name, err := ResolveBinaryName(key)
	if err != nil {
		panic(fmt.Sprintf("platform: %v", err))
	}
	return name
}

// SupportedKeys returns every OS/arch pair that resolves to a binary name,
// using canonical identifiers only.
func SupportedKeys() []Key {
	oses := []string{"darwin", "freebsd", "linux", "windows"}
	arches := []string{"amd64", "386"}

	keys := make([]Key, 0, len(oses)*len(arches))
	for _, goos := range oses {
		for _, arch := range arches {
			keys = append(keys, Key{OS: goos, Arch: arch})
		}
	}
	return keys
}
