package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingDestination is returned when parsed arguments have no destination.
	ErrMissingDestination = errors.New("missing destination path")
	// ErrUnterminatedQuote is returned for a command line with an open double quote.
	ErrUnterminatedQuote = errors.New("unterminated quote")
)

// ParseArgs reverses Builder.Args. Names keep their "--" prefix. Repeated
// flags are collected into a List in order of appearance, and a flag given
// once with a value becomes a one-element List.
func ParseArgs(args []string) (*OptionSet, string, error) {
	opts := NewOptionSet()
	dest := ""
	haveDest := false

	for _, arg := range args {
		if !strings.HasPrefix(arg, flagPrefix) || arg == flagPrefix {
			if haveDest {
				return nil, "", fmt.Errorf("unexpected positional argument %q after %q", arg, dest)
			}
			dest, haveDest = arg, true
			continue
		}
		if haveDest {
			return nil, "", fmt.Errorf("option %q after destination %q", arg, dest)
		}

		name, value, hasValue := strings.Cut(arg, "=")
		if !hasValue {
			if _, exists := opts.Get(name); !exists {
				opts.Flag(name)
			}
			continue
		}

		value = unquote(value)
		prev, exists := opts.Get(name)
		if exists && !prev.IsFlag() {
			opts.Set(name, List(append(prev.Choices(), value)...))
		} else {
			opts.Set(name, List(value))
		}
	}

	if !haveDest {
		return nil, "", ErrMissingDestination
	}
	return opts, dest, nil
}

// ParseCommandLine reverses Builder.CommandLine. It splits on spaces outside
// double quotes and strips the quotes. It returns the binary path, the
// options and the destination.
func ParseCommandLine(line string) (string, *OptionSet, string, error) {
	tokens, err := splitFields(line)
	if err != nil {
		return "", nil, "", err
	}
	if len(tokens) == 0 {
		return "", nil, "", errors.New("empty command line")
	}

	opts, dest, err := ParseArgs(tokens[1:])
	if err != nil {
		return "", nil, "", err
	}
	return tokens[0], opts, dest, nil
}

func splitFields(line string) ([]string, error) {
	var (
		fields  []string
		current strings.Builder
		inQuote bool
		started bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case r == ' ' && !inQuote:
			if started {
				fields = append(fields, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if inQuote {
		return nil, ErrUnterminatedQuote
	}
	if started {
		fields = append(fields, current.String())
	}
	return fields, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
