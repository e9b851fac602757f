package binary

import (
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the GitHub releases download root for fetch.
	DefaultBaseURL = "https://github.com/gruntwork-io/fetch/releases/download/"
	// DefaultVersion is the fetch release this launcher is tested against.
	DefaultVersion = "v0.1.1"
)

// Release identifies where release assets are downloaded from.
type Release struct {
	BaseURL string
	Version string
}

// DefaultRelease returns the release used when nothing is configured.
func DefaultRelease() Release {
	return Release{BaseURL: DefaultBaseURL, Version: DefaultVersion}
}

// withDefaults fills empty fields from DefaultRelease.
func (r Release) withDefaults() Release {
	if r.BaseURL == "" {
		r.BaseURL = DefaultBaseURL
	}
	if r.Version == "" {
		r.Version = DefaultVersion
	}
	return r
}

// URL returns the download URL of the named asset.
func (r Release) URL(binaryName string) string {
	r = r.withDefaults()
	return strings.TrimRight(r.BaseURL, "/") + "/" + strings.Trim(r.Version, "/") + "/" + binaryName
}

// FetchResult describes the binary after EnsureInstalled or Download.
type FetchResult struct {
	Name       string
	Path       string
	URL        string
	Downloaded bool // false when an existing file was reused
	Size       int64
	Duration   time.Duration
}
