// Package platform detects the operating system and CPU architecture of the
// running process and resolves them to the name of the prebuilt fetch
// executable published for that platform.
//
// Detection happens once at startup. The resulting Info value is passed
// explicitly to the resolver, the fetcher and the config parser rather than
// being read from the environment again. On Linux, gopsutil supplies
// distribution details, which are exposed to Lua configs through a read-only
// platform table.
package platform

import "context"

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// Info contains platform detection information.
type Info struct {
	OS       string // "linux", "darwin", "freebsd", "windows"
	Arch     string // canonical release token: "amd64" or "386"
	ArchRaw  string // identifier as reported (e.g., "x86_64", "i686")
	Platform string // distro ID (Linux only, e.g., "ubuntu")
	Family   string // canonical family (e.g., "debian")
	Version  string // distro version (Linux only, e.g., "22.04")
}

// Key identifies a platform by operating system and architecture.
type Key struct {
	OS   string
	Arch string
}

// String returns the key as "os/arch".
func (k Key) String() string {
	return k.OS + "/" + k.Arch
}

// Key returns the platform key used for binary name resolution.
func (i *Info) Key() Key {
	return Key{OS: i.OS, Arch: i.Arch}
}

// Distro contains Linux distribution information.
type Distro struct {
	ID      string
	Family  string
	Version string
}

// GetDistro returns distro information if this is a Linux platform.
// Returns nil for non-Linux platforms or if distro detection failed.
func (i *Info) GetDistro() *Distro {
	if i.OS != "linux" || i.Platform == "" {
		return nil
	}
	return &Distro{
		ID:      i.Platform,
		Family:  i.Family,
		Version: i.Version,
	}
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsAMD64 returns true if the architecture is 64-bit x86.
func (i *Info) IsAMD64() bool {
	return i.Arch == "amd64"
}

// Is386 returns true if the architecture is 32-bit x86.
func (i *Info) Is386() bool {
	return i.Arch == "386"
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
