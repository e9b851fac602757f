package platform

import (
	"fmt"
	"strings"
)

// familyMap maps distribution names to their canonical family names.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// archTokens maps architecture identifiers to the tokens used in release
// asset names. Both Go and Node-style identifiers are accepted.
var archTokens = map[string]string{
	"amd64":  "amd64",
	"x86_64": "amd64",
	"x64":    "amd64",
	"386":    "386",
	"i386":   "386",
	"i686":   "386",
	"ia32":   "386",
}

// osAliases maps alternative operating system identifiers to GOOS values.
var osAliases = map[string]string{
	"win32": "windows",
	"macos": "darwin",
}

// normalizeArch converts an architecture identifier to its release token.
func normalizeArch(arch string) (string, error) {
	token, ok := archTokens[strings.ToLower(strings.TrimSpace(arch))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedArch, arch)
	}
	return token, nil
}

// normalizeOS lowercases an OS identifier and resolves known aliases.
func normalizeOS(goos string) string {
	goos = strings.ToLower(strings.TrimSpace(goos))
	if alias, ok := osAliases[goos]; ok {
		return alias
	}
	return goos
}

// normalizePlatform converts platform IDs to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}
	return FamilyUnknown
}
