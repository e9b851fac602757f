package command

import (
	"path/filepath"
	"strings"
)

// Builder serializes option sets into invocations of one binary.
type Builder struct {
	binaryPath string
}

// NewBuilder returns a Builder for the binary at binaryPath. Relative paths
// are made absolute against the working directory.
func NewBuilder(binaryPath string) *Builder {
	if !filepath.IsAbs(binaryPath) {
		if abs, err := filepath.Abs(binaryPath); err == nil {
			binaryPath = abs
		}
	}
	return &Builder{binaryPath: binaryPath}
}

// BinaryPath returns the absolute path of the binary.
func (b *Builder) BinaryPath() string {
	return b.binaryPath
}

// Args returns the arguments passed to the binary: one element per flag
// occurrence, followed by dest.
func (b *Builder) Args(opts *OptionSet, dest string) []string {
	args := make([]string, 0, opts.Len()+1)
	for _, opt := range opts.Options() {
		name := NormalizeName(opt.Name)
		if opt.Value.IsFlag() {
			args = append(args, name)
			continue
		}
		for _, choice := range opt.Value.Choices() {
			args = append(args, name+"="+choice)
		}
	}
	return append(args, dest)
}

// Argv returns the binary path followed by Args.
func (b *Builder) Argv(opts *OptionSet, dest string) []string {
	return append([]string{b.binaryPath}, b.Args(opts, dest)...)
}

// CommandLine returns the invocation as a single shell string. Choices are
// wrapped in double quotes without escaping and dest is not quoted.
func (b *Builder) CommandLine(opts *OptionSet, dest string) string {
	var sb strings.Builder
	sb.WriteString(b.binaryPath)

	for _, opt := range opts.Options() {
		name := NormalizeName(opt.Name)
		if opt.Value.IsFlag() {
			sb.WriteString(" ")
			sb.WriteString(name)
			continue
		}
		for _, choice := range opt.Value.Choices() {
			sb.WriteString(" ")
			sb.WriteString(name)
			sb.WriteString(`="`)
			sb.WriteString(choice)
			sb.WriteString(`"`)
		}
	}

	sb.WriteString(" ")
	sb.WriteString(dest)
	return sb.String()
}
