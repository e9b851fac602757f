package cli

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/command"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/config"
	"github.com/spf13/cobra"
)

// optionFlags are the flags that build the option set of a run.
type optionFlags struct {
	options     []string
	optionsFile string
}

func (f *optionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.options, "option", "o", nil, "Option for fetch as name=value, or name for a bare flag (repeatable)")
	cmd.Flags().StringVar(&f.optionsFile, "options-file", "", "YAML or TOML file of options, applied before -o")
}

// build returns the options file merged with -o values.
func (f *optionFlags) build() (*command.OptionSet, error) {
	opts := command.NewOptionSet()
	if f.optionsFile != "" {
		fileOpts, err := config.LoadOptionsFile(f.optionsFile)
		if err != nil {
			return nil, err
		}
		opts.Merge(fileOpts)
	}

	flagOpts, err := parseOptionFlags(f.options)
	if err != nil {
		return nil, err
	}
	return opts.Merge(flagOpts), nil
}

// parseOptionFlags converts -o values. "name" is a bare flag, "name=value"
// a single value. A name given more than once collects every value in order.
func parseOptionFlags(values []string) (*command.OptionSet, error) {
	opts := command.NewOptionSet()
	for _, raw := range values {
		name, value, hasValue := strings.Cut(raw, "=")
		name = strings.TrimLeft(strings.TrimSpace(name), "-")
		if name == "" {
			return nil, fmt.Errorf("invalid option %q: missing name", raw)
		}

		if !hasValue {
			opts.Flag(name)
			continue
		}

		if prev, ok := opts.Get(name); ok && !prev.IsFlag() {
			opts.Multi(name, append(prev.Choices(), value)...)
			continue
		}
		opts.Single(name, value)
	}
	return opts, nil
}
